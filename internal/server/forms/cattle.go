package forms

import (
	"strings"

	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/validation"
)

// CattleForm is the add/edit animal form. Status is optional and, when
// chosen, is written through to the latest health check.
type CattleForm struct {
	TagNo     string `form:"tag_no"`
	Name      string `form:"name"`
	BirthDate string `form:"birth_date"`
	Gender    string `form:"gender"`
	Breed     string `form:"breed"`
	Category  string `form:"category"`
	Housing   string `form:"housing"`
	Mother    string `form:"mother"`
	Father    string `form:"father"`
	Status    string `form:"status"`
}

// CattleFormFrom pre-fills the form from an existing animal.
func CattleFormFrom(c *models.Cattle) CattleForm {
	f := CattleForm{
		TagNo:     c.TagNo,
		Name:      c.Name,
		BirthDate: formatDate(c.BirthDate),
		Gender:    string(c.Gender),
		Breed:     c.Breed,
		Category:  c.Category,
		Housing:   c.Housing,
		Mother:    c.Mother,
		Father:    c.Father,
	}
	if c.HasStatus() {
		f.Status = string(c.CurrentStatus())
	}
	return f
}

// Apply copies the form onto c, keeping its ID, and returns the chosen status.
func (f CattleForm) Apply(c *models.Cattle) (*models.Status, validation.Errors) {
	p := newParser(nil)

	c.TagNo = strings.TrimSpace(f.TagNo)
	c.Name = strings.TrimSpace(f.Name)
	c.BirthDate = p.date("birth_date", f.BirthDate)
	c.Gender = models.Gender(f.Gender)
	c.Breed = strings.TrimSpace(f.Breed)
	c.Category = strings.TrimSpace(f.Category)
	c.Housing = strings.TrimSpace(f.Housing)
	c.Mother = strings.TrimSpace(f.Mother)
	c.Father = strings.TrimSpace(f.Father)

	var status *models.Status
	if s := strings.TrimSpace(f.Status); s != "" {
		st := models.Status(s)
		status = &st
	}
	return status, p.errs
}
