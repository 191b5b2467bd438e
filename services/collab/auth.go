package collab

import (
	"context"

	"travelorbit/models"

	"go.uber.org/zap"
)

// DefaultAuthService talks to the auth/OTP issuer over HTTP.
type DefaultAuthService struct {
	api *apiClient
}

func NewAuthService(baseURL string, logger *zap.Logger) *DefaultAuthService {
	return &DefaultAuthService{api: newAPIClient(baseURL, logger)}
}

type authResponse struct {
	RegisterID   string `json:"register_id"`
	AuthProvider string `json:"auth_provider"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Name         string `json:"name"`
}

func (r authResponse) identity() *models.Identity {
	return &models.Identity{
		RegisterID:    r.RegisterID,
		Email:         r.Email,
		Phone:         r.Phone,
		Name:          r.Name,
		AuthProvider:  r.AuthProvider,
		Authenticated: true,
	}
}

// EmailLogin asks the issuer to send a login OTP. The issuer answers 404
// for unknown emails ("please sign up first"), which is not a failure here:
// it routes the conversation into the signup branch.
func (s *DefaultAuthService) EmailLogin(ctx context.Context, email string) (EmailLoginStatus, error) {
	body := map[string]string{"email": email}
	err := s.api.doJSON(ctx, "POST", "/email/login/send-otp", body, nil)
	if err != nil {
		if IsKind(err, NotFound) {
			return EmailNew, nil
		}
		return "", err
	}
	return EmailExisting, nil
}

func (s *DefaultAuthService) EmailVerifyOTP(ctx context.Context, email, code string) (*models.Identity, error) {
	body := map[string]string{"email": email, "code": code}
	var resp authResponse
	if err := s.api.doJSON(ctx, "POST", "/email/login/verify", body, &resp); err != nil {
		return nil, err
	}
	return resp.identity(), nil
}

func (s *DefaultAuthService) ThirdPartyAuthURL(ctx context.Context) (string, error) {
	var resp struct {
		AuthURL string `json:"auth_url"`
	}
	if err := s.api.doJSON(ctx, "GET", "/google/url", nil, &resp); err != nil {
		return "", err
	}
	return resp.AuthURL, nil
}

func (s *DefaultAuthService) PhoneSignupSendOTP(ctx context.Context, phone, email, name string) error {
	body := map[string]string{"phone": phone, "email": email, "name": name}
	return s.api.doJSON(ctx, "POST", "/phone/signup/send-otp", body, nil)
}

func (s *DefaultAuthService) PhoneSignupVerifyOTP(ctx context.Context, phone, code string) (*models.Identity, error) {
	body := map[string]string{"phone": phone, "code": code}
	var resp authResponse
	if err := s.api.doJSON(ctx, "POST", "/phone/signup/verify", body, &resp); err != nil {
		return nil, err
	}
	return resp.identity(), nil
}

func (s *DefaultAuthService) ThirdPartyPhoneSendOTP(ctx context.Context, tempID, phone string) (string, error) {
	body := map[string]string{"google_temp_id": tempID, "phone": phone}
	var resp struct {
		GooglePhoneTempID string `json:"google_phone_temp_id"`
	}
	if err := s.api.doJSON(ctx, "POST", "/google/phone/send-otp", body, &resp); err != nil {
		return "", err
	}
	return resp.GooglePhoneTempID, nil
}

func (s *DefaultAuthService) ThirdPartyPhoneVerifyOTP(ctx context.Context, tempID, code string) (*models.Identity, error) {
	body := map[string]string{"google_temp_id": tempID, "code": code}
	var resp authResponse
	if err := s.api.doJSON(ctx, "POST", "/google/phone/verify", body, &resp); err != nil {
		return nil, err
	}
	return resp.identity(), nil
}
