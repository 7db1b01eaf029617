package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/validation"
)

func newTranslator(t *testing.T, def Lang) *Translator {
	t.Helper()
	tr, err := New(def)
	require.NoError(t, err)
	return tr
}

func TestMatch(t *testing.T) {
	tr := newTranslator(t, Thai)

	tests := []struct {
		header string
		want   Lang
	}{
		{"", Thai},
		{"en-US,en;q=0.9", English},
		{"th-TH", Thai},
		{"fr-FR,fr;q=0.9", Thai},
		{"fr-FR,en;q=0.5", English},
		{"not a header;;", Thai},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Match(tt.header))
		})
	}

	assert.Equal(t, English, newTranslator(t, English).Match("de"))
}

func TestParse(t *testing.T) {
	tr := newTranslator(t, Thai)

	lang, ok := tr.Parse("en-GB")
	require.True(t, ok)
	assert.Equal(t, English, lang)

	_, ok = tr.Parse("ja")
	assert.False(t, ok)
}

func TestNewRejectsUnknownDefault(t *testing.T) {
	_, err := New("de")
	assert.Error(t, err)
}

func TestLabels(t *testing.T) {
	tr := newTranslator(t, Thai)

	assert.Equal(t, "ป่วย", tr.Status(Thai, models.StatusSick))
	assert.Equal(t, "For sale", tr.Status(English, models.StatusForSale))
	assert.Equal(t, "ตัวเมีย", tr.Gender(Thai, models.GenderFemale))
	assert.Equal(t, "ให้อาหาร", tr.EventType(Thai, models.EventFeeding))
	assert.Equal(t, "อื่น ๆ", tr.EventType(Thai, "vaccine"))
	assert.Equal(t, "Weighing", tr.NotificationType(English, models.NotificationWeight))
	assert.Equal(t, "ลบโค A001 เรียบร้อยแล้ว", tr.T(Thai, "flash.deleted", "A001"))
}

func TestEventColor(t *testing.T) {
	assert.Equal(t, "#3788d8", EventColor(models.EventFeeding))
	assert.Equal(t, "#dc3545", EventColor(models.EventHealth))
	assert.Equal(t, "#fd7e14", EventColor(models.EventBreeding))
	assert.Equal(t, "#6c757d", EventColor(models.EventOther))
	assert.Equal(t, "#6c757d", EventColor("vaccine"))
}

func TestLocalizeValidationErrors(t *testing.T) {
	tr := newTranslator(t, Thai)
	errs := validation.Errors{}
	errs.Add("tag_no", "required", "")
	errs.Add("name", "max", "100")
	errs.Add("next_due_date", "gtefield", "vaccine_date")
	errs.Add("heart_rate", "weird", "")

	got := tr.Localize(English, errs)
	assert.Equal(t, map[string][]string{
		"tag_no":        {"This field is required."},
		"name":          {"Ensure this value has at most 100 characters."},
		"next_due_date": {"Must not be before Vaccination date."},
		"heart_rate":    {"Enter a valid value."},
	}, got)

	assert.Equal(t, []string{"กรุณากรอกข้อมูลนี้"}, tr.FieldErrors(Thai, errs, "tag_no"))
	assert.Empty(t, tr.FieldErrors(Thai, errs, "breed"))
}
