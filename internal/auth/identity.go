// Package auth bridges the external identity provider to a local User row.
// The OIDC/session handling itself lives in the fronting proxy; this layer
// only trusts the identity headers the proxy injects.
package auth

import (
	"errors"
	"net/http"

	"github.com/almhq/license-manager/internal/apperrors"
	"github.com/almhq/license-manager/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Identity headers set by the authentication proxy.
const (
	HeaderSubject   = "X-Auth-Request-Subject"
	HeaderEmail     = "X-Auth-Request-Email"
	HeaderFirstName = "X-Auth-Request-Given-Name"
	HeaderLastName  = "X-Auth-Request-Family-Name"
	HeaderAvatarURL = "X-Auth-Request-Picture"
)

const contextUserKey = "currentUser"

// Middleware resolves the caller from the proxy headers, upserting the
// local User keyed by subject. First sight defaults the role to employer;
// role promotion happens out-of-band, never through a request.
func Middleware(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.GetHeader(HeaderSubject)
		if subject == "" {
			appErr := apperrors.Authentication("authenticated session required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": appErr})
			return
		}

		var user models.User
		err := db.Where("subject = ?", subject).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = models.User{
				Subject:   subject,
				Email:     c.GetHeader(HeaderEmail),
				FirstName: c.GetHeader(HeaderFirstName),
				LastName:  c.GetHeader(HeaderLastName),
				AvatarURL: c.GetHeader(HeaderAvatarURL),
				Role:      models.RoleEmployer,
			}
			if err := db.Create(&user).Error; err != nil {
				log.Error("user upsert failed", zap.String("subject", subject), zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not establish identity"})
				return
			}
			log.Info("new user registered", zap.Uint("id", user.ID), zap.String("email", user.Email))
		} else if err != nil {
			log.Error("user lookup failed", zap.String("subject", subject), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not establish identity"})
			return
		} else {
			refreshProfile(db, &user, c)
		}

		c.Set(contextUserKey, &user)
		c.Next()
	}
}

// refreshProfile keeps the local mirror in step with the provider's
// profile fields. Role is never touched here.
func refreshProfile(db *gorm.DB, user *models.User, c *gin.Context) {
	updates := map[string]interface{}{}
	if email := c.GetHeader(HeaderEmail); email != "" && email != user.Email {
		updates["email"] = email
		user.Email = email
	}
	if name := c.GetHeader(HeaderFirstName); name != "" && name != user.FirstName {
		updates["first_name"] = name
		user.FirstName = name
	}
	if name := c.GetHeader(HeaderLastName); name != "" && name != user.LastName {
		updates["last_name"] = name
		user.LastName = name
	}
	if avatar := c.GetHeader(HeaderAvatarURL); avatar != "" && avatar != user.AvatarURL {
		updates["avatar_url"] = avatar
		user.AvatarURL = avatar
	}
	if len(updates) > 0 {
		db.Model(user).Updates(updates)
	}
}

// CurrentUser returns the caller attached by Middleware.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(contextUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
