package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"bar-website/models"
	"bar-website/services"
)

const (
	loginErrorText = "Giriş başarısız. Lütfen bilgilerinizi kontrol edin."
	saveErrorText  = "Menü öğesi kaydedilemedi."
)

type loginPage struct {
	Email string
	Error string
}

type menuFormValues struct {
	ID          string
	Name        string
	Description string
	Price       string
	Category    string
	ImageURL    string
}

type dashboardPage struct {
	Session  models.Session
	Tab      string
	List     services.AdminMenuList
	Messages []models.ContactMessage
	Form     menuFormValues
	ShowForm bool
	Error    string
	SortKeys []string
}

func formValuesOf(it *models.MenuItem) menuFormValues {
	return menuFormValues{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       strconv.FormatFloat(it.Price, 'f', -1, 64),
		Category:    it.Category,
		ImageURL:    it.Image,
	}
}

// GET /admin renders the login form or, with a valid session, the dashboard.
func (s *Server) adminPage(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		c.HTML(http.StatusOK, "admin_login.gohtml", loginPage{})
		return
	}
	page := dashboardPage{Session: sess, Error: c.Query("error")}
	if id := c.Query("edit"); id != "" {
		it, err := s.admin.GetMenuItem(c.Request.Context(), id)
		if err != nil {
			page.Error = "Menü öğesi bulunamadı."
		} else {
			page.Form = formValuesOf(it)
			page.ShowForm = true
		}
	}
	if c.Query("new") != "" {
		page.ShowForm = true
	}
	s.renderDashboard(c, http.StatusOK, page)
}

func (s *Server) renderDashboard(c *gin.Context, status int, page dashboardPage) {
	ctx := c.Request.Context()
	page.Tab = c.DefaultQuery("tab", "menu")
	page.SortKeys = []string{services.SortByName, services.SortByPrice, services.SortByCategory}
	list, err := s.admin.ListMenu(ctx, services.AdminListOptions{
		Category: c.Query("category"),
		SortBy:   c.Query("sort"),
	})
	if err != nil && page.Error == "" {
		page.Error = "Menü yüklenemedi."
	}
	page.List = list
	msgs, err := s.admin.ListMessages(ctx)
	if err != nil && page.Error == "" {
		page.Error = "Mesajlar yüklenemedi."
	}
	page.Messages = msgs
	c.HTML(status, "admin_dashboard.gohtml", page)
}

// POST /admin/login
func (s *Server) adminLogin(c *gin.Context) {
	email := c.PostForm("email")
	token, sess, err := s.auth.SignIn(c.Request.Context(), email, c.PostForm("password"))
	if err != nil {
		c.HTML(http.StatusUnauthorized, "admin_login.gohtml", loginPage{Email: email, Error: loginErrorText})
		return
	}
	s.setSessionCookie(c, token, int(s.sessionMaxAge(sess)))
	c.Redirect(http.StatusSeeOther, "/admin")
}

// POST /admin/logout
func (s *Server) adminLogout(c *gin.Context) {
	s.auth.SignOut(sessionFrom(c))
	s.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusSeeOther, "/admin")
}

// POST /admin/menu creates or, with an id field, overwrites a menu item.
func (s *Server) adminSaveMenu(c *gin.Context) {
	form, err := readMenuForm(c)
	if err == nil {
		_, err = s.admin.SaveMenuItem(c.Request.Context(), c.PostForm("id"), form)
	}
	if err != nil {
		page := dashboardPage{
			Session:  sessionFrom(c),
			ShowForm: true,
			Error:    saveErrorText,
			Form: menuFormValues{
				ID:          c.PostForm("id"),
				Name:        form.Name,
				Description: form.Description,
				Price:       form.Price,
				Category:    form.Category,
				ImageURL:    form.ImageURL,
			},
		}
		var v *services.ValidationError
		if errors.As(err, &v) {
			page.Error = fmt.Sprintf("%s (%s)", saveErrorText, v.Error())
		}
		s.renderDashboard(c, statusFor(err), page)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin")
}

// POST /admin/menu/:id/delete
func (s *Server) adminDeleteMenu(c *gin.Context) {
	err := s.admin.DeleteMenuItem(c.Request.Context(), c.Param("id"), c.PostForm("confirm") == "yes")
	s.redirectAfter(c, "menu", err, "Menü öğesi silinemedi.")
}

// POST /admin/messages/:id/delete
func (s *Server) adminDeleteMessage(c *gin.Context) {
	err := s.admin.DeleteMessage(c.Request.Context(), c.Param("id"), c.PostForm("confirm") == "yes")
	s.redirectAfter(c, "messages", err, "Mesaj silinemedi.")
}

func (s *Server) redirectAfter(c *gin.Context, tab string, err error, errText string) {
	q := url.Values{"tab": {tab}}
	if err != nil {
		q.Set("error", errText)
	}
	c.Redirect(http.StatusSeeOther, "/admin?"+q.Encode())
}

func (s *Server) sessionMaxAge(sess models.Session) float64 {
	return sess.ExpiresAt.Sub(timeNow()).Seconds()
}

// readMenuForm reads the menu form from a multipart/urlencoded body or JSON.
func readMenuForm(c *gin.Context) (models.MenuItemForm, error) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Price       any    `json:"price"`
			Category    string `json:"category"`
			ImageURL    string `json:"imageUrl"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			return models.MenuItemForm{}, &services.ValidationError{Field: "body", Message: "invalid JSON"}
		}
		return models.MenuItemForm{
			Name:        req.Name,
			Description: req.Description,
			Price:       rawPrice(req.Price),
			Category:    req.Category,
			ImageURL:    req.ImageURL,
		}, nil
	}

	form := models.MenuItemForm{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
		Category:    c.PostForm("category"),
		ImageURL:    c.PostForm("imageUrl"),
	}
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return form, nil
		}
		return form, &services.ValidationError{Field: "image", Message: "unreadable upload"}
	}
	up, err := readUpload(fh)
	if err != nil {
		return form, err
	}
	form.Image = up
	return form, nil
}

func rawPrice(v any) string {
	switch p := v.(type) {
	case string:
		return p
	case float64:
		return strconv.FormatFloat(p, 'f', -1, 64)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func readUpload(fh *multipart.FileHeader) (*models.Upload, error) {
	if fh.Size > maxImageBytes {
		return nil, &services.ValidationError{Field: "image", Message: "file too large"}
	}
	ct := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		return nil, &services.ValidationError{Field: "image", Message: "not an image"}
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageBytes {
		return nil, &services.ValidationError{Field: "image", Message: "file too large"}
	}
	return &models.Upload{Filename: fh.Filename, ContentType: ct, Data: data}, nil
}
