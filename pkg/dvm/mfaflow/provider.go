// Package mfaflow implements the client-side flows around multi-factor
// authentication: enrolling an authenticator app, answering a step-up
// challenge, gating navigation on the session's authentication level,
// and managing the list of enrolled factors.
package mfaflow

import (
	"errors"

	"dontverifyme/pkg/dvm"
)

// Authentication levels as reported by the controller. A session
// starts at AalSingleFactor; answering a challenge lifts it to
// AalMultiFactor.
const (
	AalSingleFactor = "aal1"
	AalMultiFactor  = "aal2"
)

const FactorTypeTotp = "totp"

// MaxVerifiedFactors mirrors the controller's per-user cap so the
// panel can refuse an enrollment without a round-trip.
const MaxVerifiedFactors = 10

// TotpCodeLength is the number of digits in a one-time password.
const TotpCodeLength = 6

var (
	ErrorFactorLimitReached = errors.New("factor_limit_reached")
	ErrorFlowClosed         = errors.New("flow_closed")
	ErrorNoChallenge        = errors.New("no_challenge")
	ErrorNoEnrollment       = errors.New("no_enrollment")
	ErrorNoFactorsEnrolled  = errors.New("no_factors_enrolled")
)

type Factor struct {
	Id         string
	Type       string
	Name       *string
	IsVerified bool
}

type Enrollment struct {
	FactorId string
	Secret   string
	Uri      string
	QrCode   string
}

type Challenge struct {
	Id       string
	FactorId string
}

type Aal struct {
	CurrentLevel string
	NextLevel    string
}

// Provider is the controller surface the flows drive. Use
// NewClientProvider for the real thing; tests substitute fakes.
type Provider interface {
	ListFactors() ([]Factor, error)
	Enroll(name *string) (*Enrollment, error)
	VerifyEnrollment(factorId string, code string) error
	Unenroll(factorId string) error
	CreateChallenge(factorId *string) (*Challenge, error)
	VerifyChallenge(challengeId string, code string) (*Aal, error)
	GetAal() (*Aal, error)
}

// NewClientProvider adapts an sdk client into a Provider.
func NewClientProvider(client *dvm.Client) Provider {
	return &clientProvider{client: client}
}

type clientProvider struct {
	client *dvm.Client
}

func (p *clientProvider) ListFactors() ([]Factor, error) {
	output, err := p.client.ListMfasV1()
	if err != nil {
		return nil, err
	}
	factors := []Factor{}
	for _, factor := range output.Data {
		factors = append(factors, Factor{
			Id:         factor.Id,
			Type:       factor.Type,
			Name:       factor.Name,
			IsVerified: factor.IsVerified,
		})
	}
	return factors, nil
}

func (p *clientProvider) Enroll(name *string) (*Enrollment, error) {
	output, err := p.client.EnrollMfaV1(dvm.EnrollMfaV1Input{
		MfaType: FactorTypeTotp,
		Name:    name,
	})
	if err != nil {
		return nil, err
	}
	return &Enrollment{
		FactorId: output.Data.Id,
		Secret:   output.Data.Secret,
		Uri:      output.Data.Uri,
		QrCode:   output.Data.QrCode,
	}, nil
}

func (p *clientProvider) VerifyEnrollment(factorId string, code string) error {
	_, err := p.client.VerifyMfaEnrollmentV1(dvm.VerifyMfaEnrollmentV1Input{
		MfaId: factorId,
		Value: code,
	})
	return err
}

func (p *clientProvider) Unenroll(factorId string) error {
	_, err := p.client.DeleteMfaV1(dvm.DeleteMfaV1Input{
		MfaId: factorId,
	})
	return err
}

func (p *clientProvider) CreateChallenge(factorId *string) (*Challenge, error) {
	output, err := p.client.CreateMfaChallengeV1(dvm.CreateMfaChallengeV1Input{
		FactorId: factorId,
	})
	if err != nil {
		return nil, err
	}
	return &Challenge{
		Id:       output.Data.ChallengeId,
		FactorId: output.Data.FactorId,
	}, nil
}

func (p *clientProvider) VerifyChallenge(challengeId string, code string) (*Aal, error) {
	output, err := p.client.VerifyMfaChallengeV1(dvm.VerifyMfaChallengeV1Input{
		ChallengeId: challengeId,
		Value:       code,
	})
	if err != nil {
		return nil, err
	}
	return &Aal{
		CurrentLevel: output.Data.CurrentLevel,
		NextLevel:    output.Data.NextLevel,
	}, nil
}

func (p *clientProvider) GetAal() (*Aal, error) {
	output, err := p.client.GetAalV1()
	if err != nil {
		return nil, err
	}
	return &Aal{
		CurrentLevel: output.Data.CurrentLevel,
		NextLevel:    output.Data.NextLevel,
	}, nil
}

// filterDigits keeps only ascii digits from the provided text and
// truncates the result to TotpCodeLength characters.
func filterDigits(text string) string {
	digits := make([]byte, 0, TotpCodeLength)
	for i := 0; i < len(text); i++ {
		if text[i] >= '0' && text[i] <= '9' {
			digits = append(digits, text[i])
			if len(digits) == TotpCodeLength {
				break
			}
		}
	}
	return string(digits)
}
