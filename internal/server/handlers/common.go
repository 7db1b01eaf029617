package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herd/internal/i18n"
	"github.com/mamadbah2/herd/internal/server/forms"
	"github.com/mamadbah2/herd/internal/server/views"
	"github.com/mamadbah2/herd/internal/validation"
)

// LangKey is the gin context key holding the negotiated i18n.Lang.
const LangKey = "lang"

const flashCookie = "flash"

// Lang returns the request language set by the router, or the default.
func Lang(c *gin.Context, tr *i18n.Translator) i18n.Lang {
	if v, ok := c.Get(LangKey); ok {
		if lang, ok := v.(i18n.Lang); ok {
			return lang
		}
	}
	return tr.Default()
}

func setFlash(c *gin.Context, level, message string) {
	c.SetCookie(flashCookie, level+"|"+message, 60, "/", "", false, true)
}

func popFlash(c *gin.Context) *views.Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	level, message, ok := strings.Cut(raw, "|")
	if !ok {
		return nil
	}
	return &views.Flash{Level: level, Message: message}
}

// idParam parses a positive numeric path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// bindPostForm parses the request body and binds the "<prefix>-" fields onto dst.
func bindPostForm(c *gin.Context, prefix string, dst any) error {
	if err := c.Request.ParseForm(); err != nil {
		return err
	}
	return forms.Bind(c.Request.PostForm, prefix, dst)
}

// splitValidation separates validation failures from other errors.
func splitValidation(err error) (validation.Errors, error) {
	if err == nil {
		return nil, nil
	}
	if errs, ok := validation.As(err); ok {
		return errs, nil
	}
	return nil, err
}

// renderer renders the HTML pages shared by the page handlers.
type renderer struct {
	tr     *i18n.Translator
	loc    *time.Location
	logger *zap.Logger
}

func (r renderer) page(c *gin.Context, titleKey string, data any) *views.Page {
	p := views.NewPage(r.tr, Lang(c, r.tr), r.loc, titleKey, data)
	p.Path = c.Request.URL.Path
	p.Flash = popFlash(c)
	return p
}

func (r renderer) html(c *gin.Context, status int, name, titleKey string, data any) {
	c.HTML(status, name, r.page(c, titleKey, data))
}

// invalid re-renders a form page with an error banner.
func (r renderer) invalid(c *gin.Context, name, titleKey, flashKey string, data any) {
	p := r.page(c, titleKey, data)
	p.Flash = &views.Flash{Level: "danger", Message: p.Tr(flashKey)}
	c.HTML(http.StatusOK, name, p)
}

func (r renderer) redirect(c *gin.Context, location, messageKey string, args ...any) {
	if messageKey != "" {
		setFlash(c, "success", r.tr.T(Lang(c, r.tr), messageKey, args...))
	}
	c.Redirect(http.StatusFound, location)
}

func (r renderer) notFound(c *gin.Context) {
	lang := Lang(c, r.tr)
	r.html(c, http.StatusNotFound, "error.html", "page.error", r.tr.T(lang, "error.not_found"))
}

// fail maps not-found errors to 404 and everything else to 500.
func (r renderer) fail(c *gin.Context, err error, notFound error) {
	if notFound != nil && errors.Is(err, notFound) {
		r.notFound(c)
		return
	}
	r.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	lang := Lang(c, r.tr)
	r.html(c, http.StatusInternalServerError, "error.html", "page.error", r.tr.T(lang, "error.internal"))
}
