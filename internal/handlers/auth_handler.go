package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/mjkoder/Invoice-Application/internal/auth"
	"github.com/mjkoder/Invoice-Application/internal/middleware"
	"github.com/mjkoder/Invoice-Application/internal/models"
	"github.com/mjkoder/Invoice-Application/internal/repository"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

const oauthStateKey = "oauth_state"

type AuthHandler struct {
	users       *repository.UserRepository
	oauth       *oauth2.Config
	frontendURL string
}

func NewAuthHandler(users *repository.UserRepository, oauth *oauth2.Config, frontendURL string) *AuthHandler {
	return &AuthHandler{users: users, oauth: oauth, frontendURL: frontendURL}
}

// Login starts the Google consent flow.
func (h *AuthHandler) Login(c *gin.Context) {
	state := uuid.New().String()

	session := sessions.Default(c)
	session.Set(oauthStateKey, state)
	if err := session.Save(); err != nil {
		log.Println("saving oauth state:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.Redirect(http.StatusFound, h.oauth.AuthCodeURL(state))
}

// Callback completes the code exchange, creates the user on first login and
// stores the user id in the session.
func (h *AuthHandler) Callback(c *gin.Context) {
	session := sessions.Default(c)

	state, _ := session.Get(oauthStateKey).(string)
	if state == "" || c.Query("state") != state {
		c.Redirect(http.StatusFound, h.frontendURL)
		return
	}
	session.Delete(oauthStateKey)

	token, err := h.oauth.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		log.Println("exchanging oauth code:", err)
		c.Redirect(http.StatusFound, h.frontendURL)
		return
	}

	googleUser, err := auth.FetchGoogleUser(c.Request.Context(), token)
	if err != nil {
		log.Println("fetching google user:", err)
		c.Redirect(http.StatusFound, h.frontendURL)
		return
	}

	user, err := h.users.GetByGoogleID(googleUser.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &models.User{
			ID:        uuid.New(),
			GoogleID:  googleUser.ID,
			Email:     googleUser.Email,
			Name:      googleUser.Name,
			CreatedAt: time.Now(),
		}
		err = h.users.Create(user)
	}
	if err != nil {
		log.Println("resolving user:", err)
		c.Redirect(http.StatusFound, h.frontendURL)
		return
	}

	session.Set(middleware.UserIDKey, user.ID.String())
	if err := session.Save(); err != nil {
		log.Println("saving session:", err)
		c.Redirect(http.StatusFound, h.frontendURL)
		return
	}

	c.Redirect(http.StatusFound, h.frontendURL+"/invoices")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{MaxAge: -1, Path: "/"})
	if err := session.Save(); err != nil {
		log.Println("destroying session:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging out."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Current returns the logged-in user, or an empty 200 when there is none.
func (h *AuthHandler) Current(c *gin.Context) {
	userID, ok := middleware.Principal(c)
	if !ok {
		c.Status(http.StatusOK)
		return
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		c.Status(http.StatusOK)
		return
	}

	c.JSON(http.StatusOK, user)
}
