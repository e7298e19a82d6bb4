package models

// ResourceID identifies a bookable room or piece of equipment.
type ResourceID string

const (
	ResourceEcografoPrincipal   ResourceID = "ecografo-principal"
	ResourceResonanciaMagnetica ResourceID = "resonancia-magnetica"
	ResourceTomografo           ResourceID = "tomografo"
	ResourceSalaRayosX1         ResourceID = "sala-rayos-x-1"
	ResourceSalaRayosX2         ResourceID = "sala-rayos-x-2"
	ResourceLaboratorioClinico  ResourceID = "laboratorio-clinico"
	ResourceSalaCardiologia     ResourceID = "sala-cardiologia"
)

// ResourceCategory is display metadata only.
type ResourceCategory string

const (
	CategoryEquipo ResourceCategory = "Equipo"
	CategorySala   ResourceCategory = "Sala"
)

// Resource is a catalog entry.
type Resource struct {
	ID       ResourceID       `json:"id"`
	Name     string           `json:"name"`
	Category ResourceCategory `json:"type"`
}

// ResourceCatalog is the fixed set of resources that can be blocked.
var ResourceCatalog = []Resource{
	{ID: ResourceEcografoPrincipal, Name: "Ecógrafo Principal", Category: CategoryEquipo},
	{ID: ResourceResonanciaMagnetica, Name: "Resonancia Magnética", Category: CategoryEquipo},
	{ID: ResourceTomografo, Name: "Tomógrafo", Category: CategoryEquipo},
	{ID: ResourceSalaRayosX1, Name: "Sala Rayos X 1", Category: CategorySala},
	{ID: ResourceSalaRayosX2, Name: "Sala Rayos X 2", Category: CategorySala},
	{ID: ResourceLaboratorioClinico, Name: "Laboratorio Clínico", Category: CategorySala},
	{ID: ResourceSalaCardiologia, Name: "Sala Cardiología", Category: CategorySala},
}

// LookupResource finds a catalog entry by id.
func LookupResource(id ResourceID) (Resource, bool) {
	for _, r := range ResourceCatalog {
		if r.ID == id {
			return r, true
		}
	}
	return Resource{}, false
}

// IsKnownResource reports whether id is in the catalog.
func IsKnownResource(id ResourceID) bool {
	_, ok := LookupResource(id)
	return ok
}
