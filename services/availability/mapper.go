package availability

import (
	"errors"
	"fmt"
	"strings"

	"clinicblocks/models"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrUnknownExam     = errors.New("unknown exam")
	ErrUnknownResource = errors.New("unknown resource")
)

// DefaultExamResources maps each exam to the interchangeable resources able to perform it,
// in preference order.
var DefaultExamResources = map[models.ExamName][]models.ResourceID{
	models.ExamRadiografia:         {models.ResourceSalaRayosX1, models.ResourceSalaRayosX2},
	models.ExamTomografia:          {models.ResourceTomografo},
	models.ExamResonanciaMagnetica: {models.ResourceResonanciaMagnetica},
	models.ExamEcografia:           {models.ResourceEcografoPrincipal},

	models.ExamHemogramaCompleto: {models.ResourceLaboratorioClinico},
	models.ExamQuimicaSanguinea:  {models.ResourceLaboratorioClinico},
	models.ExamPerfilLipidico:    {models.ResourceLaboratorioClinico},
	models.ExamUroanalisis:       {models.ResourceLaboratorioClinico},

	models.ExamElectrocardiograma: {models.ResourceSalaCardiologia},
	models.ExamEcocardiograma:     {models.ResourceEcografoPrincipal},
	models.ExamPruebaDeEsfuerzo:   {models.ResourceSalaCardiologia},
	models.ExamHolter:             {models.ResourceSalaCardiologia},
}

// Mapper is the static exam to resource table.
type Mapper struct {
	table map[models.ExamName][]models.ResourceID
}

// NewMapper validates the table: every entry needs at least one resource, every resource must
// be in the catalog and may appear only once per exam.
func NewMapper(table map[models.ExamName][]models.ResourceID) (*Mapper, error) {
	out := make(map[models.ExamName][]models.ResourceID, len(table))
	for exam, resources := range table {
		if len(resources) == 0 {
			return nil, fmt.Errorf("exam %q has no resources", exam)
		}
		seen := make(map[models.ResourceID]bool, len(resources))
		for _, r := range resources {
			if !models.IsKnownResource(r) {
				return nil, fmt.Errorf("exam %q: %w %q", exam, ErrUnknownResource, r)
			}
			if seen[r] {
				return nil, fmt.Errorf("exam %q lists %q twice", exam, r)
			}
			seen[r] = true
		}
		out[normalizeExam(string(exam))] = append([]models.ResourceID(nil), resources...)
	}
	return &Mapper{table: out}, nil
}

// MustNewMapper panics on an invalid table; used for the compiled-in default.
func MustNewMapper(table map[models.ExamName][]models.ResourceID) *Mapper {
	m, err := NewMapper(table)
	if err != nil {
		panic(err)
	}
	return m
}

// DefaultMapper returns a mapper over DefaultExamResources.
func DefaultMapper() *Mapper {
	return MustNewMapper(DefaultExamResources)
}

// ExamToResources returns a copy of the ordered resource list for exam.
func (m *Mapper) ExamToResources(exam models.ExamName) ([]models.ResourceID, error) {
	resources, ok := m.table[normalizeExam(string(exam))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExam, exam)
	}
	return append([]models.ResourceID(nil), resources...), nil
}

// Catalog lists every mapped exam grouped by category in display order.
func (m *Mapper) Catalog() []models.ExamResources {
	var out []models.ExamResources
	for _, cat := range []models.ExamCategory{models.CategoryImagenes, models.CategoryLaboratorio, models.CategoryCardiologia} {
		for _, exam := range models.ExamCatalog[cat] {
			resources, err := m.ExamToResources(exam)
			if err != nil {
				continue
			}
			out = append(out, models.ExamResources{Exam: exam, Category: cat, Resources: resources})
		}
	}
	return out
}

// normalizeExam folds the exam name to NFC so decomposed accents from clients still match.
func normalizeExam(s string) models.ExamName {
	return models.ExamName(norm.NFC.String(strings.TrimSpace(s)))
}
