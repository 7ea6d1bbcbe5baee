package web

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"bar-website/models"
	"bar-website/services"
)

const contactErrorText = "Mesaj gönderilirken bir hata oluştu. Lütfen tekrar deneyin."

type contactFormState struct {
	Name     string
	Email    string
	Message  string
	SentName string
	Sent     bool
	Error    string
}

type indexPage struct {
	Menu      models.MenuView
	MenuError bool
	Contact   contactFormState
}

func menuQuery(c *gin.Context) services.MenuQuery {
	return services.MenuQuery{Table: c.Query("table"), Category: c.Query("category")}
}

func (s *Server) renderIndex(c *gin.Context, status int, form contactFormState) {
	view, err := s.menu.View(c.Request.Context(), menuQuery(c))
	c.HTML(status, "index.gohtml", indexPage{Menu: view, MenuError: err != nil, Contact: form})
}

// GET / and /menu
func (s *Server) index(c *gin.Context) {
	form := contactFormState{}
	if c.Query("contact") == "sent" {
		form.Sent = true
		form.SentName = c.Query("name")
	}
	s.renderIndex(c, http.StatusOK, form)
}

// POST /contact
func (s *Server) contactForm(c *gin.Context) {
	form := contactFormState{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	}
	msg, err := s.contact.Submit(c.Request.Context(), form.Name, form.Email, form.Message)
	if err != nil {
		form.Error = contactErrorText
		s.renderIndex(c, statusFor(err), form)
		return
	}
	q := url.Values{"contact": {"sent"}, "name": {msg.Name}}
	c.Redirect(http.StatusSeeOther, "/?"+q.Encode()+"#contact")
}

// GET /api/menu
func (s *Server) apiMenu(c *gin.Context) {
	view, err := s.menu.View(c.Request.Context(), menuQuery(c))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false, "error": "menu unavailable", "data": view})
		return
	}
	ok(c, view)
}

type contactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

// POST /api/contact
func (s *Server) apiContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid payload")
		return
	}
	msg, err := s.contact.Submit(c.Request.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		failErr(c, err)
		return
	}
	created(c, msg)
}
