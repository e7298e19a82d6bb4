package availability

import (
	"testing"

	"clinicblocks/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func TestDefaultMapper_EveryCatalogExamIsMapped(t *testing.T) {
	m := DefaultMapper()
	for cat, exams := range models.ExamCatalog {
		for _, exam := range exams {
			resources, err := m.ExamToResources(exam)
			require.NoErrorf(t, err, "%s / %s", cat, exam)
			assert.NotEmpty(t, resources)
		}
	}
	assert.Len(t, m.Catalog(), 12)
}

func TestMapper_OrderAndSharedResources(t *testing.T) {
	m := DefaultMapper()

	xray, err := m.ExamToResources(models.ExamRadiografia)
	require.NoError(t, err)
	assert.Equal(t, []models.ResourceID{models.ResourceSalaRayosX1, models.ResourceSalaRayosX2}, xray)

	hemo, _ := m.ExamToResources(models.ExamHemogramaCompleto)
	lipid, _ := m.ExamToResources(models.ExamPerfilLipidico)
	assert.Equal(t, hemo, lipid)
}

func TestMapper_ReturnsCopies(t *testing.T) {
	m := DefaultMapper()
	xray, _ := m.ExamToResources(models.ExamRadiografia)
	xray[0] = models.ResourceTomografo

	again, _ := m.ExamToResources(models.ExamRadiografia)
	assert.Equal(t, models.ResourceSalaRayosX1, again[0])
}

func TestMapper_AcceptsDecomposedAccents(t *testing.T) {
	m := DefaultMapper()
	decomposed := models.ExamName(norm.NFD.String(string(models.ExamTomografia)))
	require.NotEqual(t, models.ExamTomografia, decomposed)

	resources, err := m.ExamToResources(decomposed)
	require.NoError(t, err)
	assert.Equal(t, []models.ResourceID{models.ResourceTomografo}, resources)
}

func TestMapper_UnknownExam(t *testing.T) {
	_, err := DefaultMapper().ExamToResources("Tomografia")
	assert.ErrorIs(t, err, ErrUnknownExam)
}

func TestNewMapper_RejectsInvalidTables(t *testing.T) {
	_, err := NewMapper(map[models.ExamName][]models.ResourceID{models.ExamHolter: {}})
	assert.Error(t, err)

	_, err = NewMapper(map[models.ExamName][]models.ResourceID{models.ExamHolter: {"sala-holter"}})
	assert.ErrorIs(t, err, ErrUnknownResource)

	_, err = NewMapper(map[models.ExamName][]models.ResourceID{
		models.ExamHolter: {models.ResourceSalaCardiologia, models.ResourceSalaCardiologia},
	})
	assert.Error(t, err)

	assert.Panics(t, func() {
		MustNewMapper(map[models.ExamName][]models.ResourceID{models.ExamHolter: nil})
	})
}
