package models

// ExamName is a bookable exam as shown in the booking flow.
type ExamName string

const (
	ExamRadiografia         ExamName = "Radiografía"
	ExamTomografia          ExamName = "Tomografía"
	ExamResonanciaMagnetica ExamName = "Resonancia Magnética"
	ExamEcografia           ExamName = "Ecografía"

	ExamHemogramaCompleto ExamName = "Hemograma Completo"
	ExamQuimicaSanguinea  ExamName = "Química Sanguínea"
	ExamPerfilLipidico    ExamName = "Perfil Lipídico"
	ExamUroanalisis       ExamName = "Uroanálisis"

	ExamElectrocardiograma ExamName = "Electrocardiograma"
	ExamEcocardiograma     ExamName = "Ecocardiograma"
	ExamPruebaDeEsfuerzo   ExamName = "Prueba de Esfuerzo"
	ExamHolter             ExamName = "Holter"
)

// ExamCategory groups exams in the booking flow.
type ExamCategory string

const (
	CategoryImagenes    ExamCategory = "Imágenes Diagnósticas"
	CategoryLaboratorio ExamCategory = "Laboratorio Clínico"
	CategoryCardiologia ExamCategory = "Cardiología"
)

// ExamCatalog lists exams per category in display order.
var ExamCatalog = map[ExamCategory][]ExamName{
	CategoryImagenes:    {ExamRadiografia, ExamTomografia, ExamResonanciaMagnetica, ExamEcografia},
	CategoryLaboratorio: {ExamHemogramaCompleto, ExamQuimicaSanguinea, ExamPerfilLipidico, ExamUroanalisis},
	CategoryCardiologia: {ExamElectrocardiograma, ExamEcocardiograma, ExamPruebaDeEsfuerzo, ExamHolter},
}

// ExamResources is the response shape for the exam catalog endpoint.
type ExamResources struct {
	Exam      ExamName     `json:"exam"`
	Category  ExamCategory `json:"category"`
	Resources []ResourceID `json:"resources"`
}
