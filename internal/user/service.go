package user

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/momentumhq/momentum-lambda/internal/auth"
	"github.com/momentumhq/momentum-lambda/internal/config"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidCode    = errors.New("invalid authorization code")
	ErrInvalidRefresh = errors.New("invalid refresh token")
)

const userInfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type UserService interface {
	GoogleLogin(ctx context.Context, code string) (*User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type userService struct {
	repo        UserRepository
	oauthConfig *oauth2.Config
}

func NewService(repo UserRepository, oauthConfig *oauth2.Config) UserService {
	return &userService{repo: repo, oauthConfig: oauthConfig}
}

func NewGoogleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
			"https://www.googleapis.com/auth/calendar.events",
		},
		Endpoint: google.Endpoint,
	}
}

type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *userService) GoogleLogin(ctx context.Context, code string) (*User, *TokenPair, error) {
	log := config.WithContext(ctx)

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		log.WithError(err).Warn("Google code exchange failed")
		return nil, nil, ErrInvalidCode
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		log.WithError(err).Error("Failed to fetch Google user info")
		return nil, nil, err
	}

	u, err := s.repo.GetByEmail(info.Email)
	if err != nil {
		return nil, nil, err
	}

	encryptedAccess, err := config.Encrypt(token.AccessToken)
	if err != nil {
		return nil, nil, err
	}

	if u == nil {
		u = &User{
			Name:     info.Name,
			Email:    info.Email,
			Picture:  info.Picture,
			Role:     "user",
			GoogleID: info.ID,
		}
	}

	u.Name = info.Name
	u.Picture = info.Picture
	u.GoogleID = info.ID
	u.EncryptedGoogleAccessToken = encryptedAccess
	if token.RefreshToken != "" {
		encryptedRefresh, err := config.Encrypt(token.RefreshToken)
		if err != nil {
			return nil, nil, err
		}
		u.EncryptedGoogleRefreshToken = encryptedRefresh
	}

	if u.ID == uuid.Nil {
		if err := s.repo.Create(u); err != nil {
			log.WithError(err).Error("Failed to create user")
			return nil, nil, err
		}
	} else {
		if err := s.repo.Update(u); err != nil {
			log.WithError(err).Error("Failed to update user")
			return nil, nil, err
		}
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, err
	}

	log.WithField("user_id", u.ID).Info("User logged in with Google")
	return u, pair, nil
}

func (s *userService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(userInfoEndpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, errors.New("google userinfo response missing email")
	}
	return &info, nil
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	log := config.WithContext(ctx)

	claims, err := auth.ValidateJWT(refreshToken)
	if err != nil {
		log.WithError(err).Warn("Invalid refresh token")
		return nil, ErrInvalidRefresh
	}

	u, err := s.repo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	return s.issueTokens(u)
}

func (s *userService) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *userService) issueTokens(u *User) (*TokenPair, error) {
	access, err := auth.GenerateJWT(u.ID.String(), u.Role, auth.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateJWT(u.ID.String(), u.Role, auth.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
