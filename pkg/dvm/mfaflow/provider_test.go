package mfaflow

import (
	"errors"
	"fmt"
	"sync"
)

// fakeProvider is an in-memory Provider that counts every call so
// tests can assert on how the flows drive it.
type fakeProvider struct {
	mu sync.Mutex

	factors    []Factor
	challenges map[string]string
	nextId     int

	validCode string

	listErr         error
	enrollErr       error
	unenrollErr     error
	unenrollFailIds map[string]bool
	challengeErr    error
	aal             *Aal
	aalErr          error

	listCalls             int
	enrollCalls           int
	verifyEnrollmentCalls int
	unenrollCalls         int
	challengeCalls        int
	verifyChallengeCalls  int
	aalCalls              int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		challenges: map[string]string{},
		validCode:  "123456",
		aal: &Aal{
			CurrentLevel: AalSingleFactor,
			NextLevel:    AalSingleFactor,
		},
	}
}

func (p *fakeProvider) ListFactors() ([]Factor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listCalls++
	if p.listErr != nil {
		return nil, p.listErr
	}
	factors := make([]Factor, len(p.factors))
	copy(factors, p.factors)
	return factors, nil
}

func (p *fakeProvider) Enroll(name *string) (*Enrollment, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enrollCalls++
	if p.enrollErr != nil {
		return nil, p.enrollErr
	}
	p.nextId++
	factorId := fmt.Sprintf("factor-%d", p.nextId)
	p.factors = append(p.factors, Factor{
		Id:   factorId,
		Type: FactorTypeTotp,
		Name: name,
	})
	return &Enrollment{
		FactorId: factorId,
		Secret:   "SEED",
		Uri:      "otpauth://totp/test",
		QrCode:   "data:image/png;base64,",
	}, nil
}

func (p *fakeProvider) VerifyEnrollment(factorId string, code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.verifyEnrollmentCalls++
	if code != p.validCode {
		return errors.New("mfa_token_invalid")
	}
	for i := range p.factors {
		if p.factors[i].Id == factorId {
			p.factors[i].IsVerified = true
			return nil
		}
	}
	return errors.New("not_found")
}

func (p *fakeProvider) Unenroll(factorId string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unenrollCalls++
	if p.unenrollErr != nil {
		return p.unenrollErr
	}
	if p.unenrollFailIds[factorId] {
		return errors.New("unknown_error")
	}
	for i := range p.factors {
		if p.factors[i].Id == factorId {
			p.factors = append(p.factors[:i], p.factors[i+1:]...)
			return nil
		}
	}
	return errors.New("not_found")
}

func (p *fakeProvider) CreateChallenge(factorId *string) (*Challenge, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.challengeCalls++
	if p.challengeErr != nil {
		return nil, p.challengeErr
	}
	targetId := ""
	if factorId != nil {
		targetId = *factorId
	} else {
		for _, factor := range p.factors {
			if factor.IsVerified {
				targetId = factor.Id
				break
			}
		}
	}
	if targetId == "" {
		return nil, errors.New("no_factors_enrolled")
	}
	p.nextId++
	challengeId := fmt.Sprintf("challenge-%d", p.nextId)
	p.challenges[challengeId] = targetId
	return &Challenge{
		Id:       challengeId,
		FactorId: targetId,
	}, nil
}

func (p *fakeProvider) VerifyChallenge(challengeId string, code string) (*Aal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.verifyChallengeCalls++
	if _, ok := p.challenges[challengeId]; !ok {
		return nil, errors.New("challenge_expired")
	}
	delete(p.challenges, challengeId)
	if code != p.validCode {
		return nil, errors.New("mfa_token_invalid")
	}
	p.aal = &Aal{
		CurrentLevel: AalMultiFactor,
		NextLevel:    AalMultiFactor,
	}
	return p.aal, nil
}

func (p *fakeProvider) GetAal() (*Aal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.aalCalls++
	if p.aalErr != nil {
		return nil, p.aalErr
	}
	return p.aal, nil
}

func (p *fakeProvider) addVerifiedFactor(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.factors = append(p.factors, Factor{
		Id:         id,
		Type:       FactorTypeTotp,
		IsVerified: true,
	})
}

func (p *fakeProvider) addUnverifiedFactor(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.factors = append(p.factors, Factor{
		Id:   id,
		Type: FactorTypeTotp,
	})
}

func (p *fakeProvider) counters() map[string]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return map[string]int{
		"list":             p.listCalls,
		"enroll":           p.enrollCalls,
		"verifyEnrollment": p.verifyEnrollmentCalls,
		"unenroll":         p.unenrollCalls,
		"challenge":        p.challengeCalls,
		"verifyChallenge":  p.verifyChallengeCalls,
		"aal":              p.aalCalls,
	}
}
