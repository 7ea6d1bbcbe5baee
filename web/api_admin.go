package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bar-website/services"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/admin/login
func (s *Server) apiLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "email and password are required")
		return
	}
	token, sess, err := s.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failErr(c, err)
		return
	}
	s.setSessionCookie(c, token, int(s.sessionMaxAge(sess)))
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token, "data": sess})
}

// GET /api/admin/session
func (s *Server) apiSession(c *gin.Context) {
	ok(c, sessionFrom(c))
}

// POST /api/admin/logout
func (s *Server) apiLogout(c *gin.Context) {
	s.auth.SignOut(sessionFrom(c))
	s.setSessionCookie(c, "", -1)
	ok(c, nil)
}

// GET /api/admin/menu?category=&sort=
func (s *Server) apiAdminMenu(c *gin.Context) {
	list, err := s.admin.ListMenu(c.Request.Context(), services.AdminListOptions{
		Category: c.Query("category"),
		SortBy:   c.Query("sort"),
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, list)
}

// POST /api/admin/menu
func (s *Server) apiCreateMenu(c *gin.Context) {
	form, err := readMenuForm(c)
	if err != nil {
		failErr(c, err)
		return
	}
	item, err := s.admin.SaveMenuItem(c.Request.Context(), "", form)
	if err != nil {
		failErr(c, err)
		return
	}
	created(c, item)
}

// PUT /api/admin/menu/:id
func (s *Server) apiUpdateMenu(c *gin.Context) {
	form, err := readMenuForm(c)
	if err != nil {
		failErr(c, err)
		return
	}
	item, err := s.admin.SaveMenuItem(c.Request.Context(), c.Param("id"), form)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, item)
}

// DELETE /api/admin/menu/:id?confirm=true
func (s *Server) apiDeleteMenu(c *gin.Context) {
	if err := s.admin.DeleteMenuItem(c.Request.Context(), c.Param("id"), c.Query("confirm") == "true"); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"id": c.Param("id")})
}

// GET /api/admin/messages
func (s *Server) apiMessages(c *gin.Context) {
	msgs, err := s.admin.ListMessages(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, msgs)
}

// DELETE /api/admin/messages/:id?confirm=true
func (s *Server) apiDeleteMessage(c *gin.Context) {
	if err := s.admin.DeleteMessage(c.Request.Context(), c.Param("id"), c.Query("confirm") == "true"); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"id": c.Param("id")})
}
