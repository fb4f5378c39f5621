package service

import "errors"

// Sentinel errors shared by the service layer. Handlers map these onto HTTP
// status codes with errors.Is; anything else surfaces as a generic internal
// error.
var (
	// auth
	ErrNameInUse          = errors.New("username already in use")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("inactive user")
	ErrInvalidToken       = errors.New("invalid token")

	// catalog
	ErrCountryNotFound = errors.New("country not found")
	ErrCountryInUse    = errors.New("country has registered services")
	ErrDuplicateName   = errors.New("name already registered")
	ErrServiceNotFound = errors.New("service not found")
	ErrUserNotFound    = errors.New("user not found")

	// evaluations
	ErrEvaluationNotFound  = errors.New("evaluation not found")
	ErrDuplicateEvaluation = errors.New("evaluation already exists for this service")
	ErrNotOwner            = errors.New("not allowed to modify this evaluation")

	// criteria
	ErrCriteriaNotFound = errors.New("criteria not found")
	ErrCriteriaInUse    = errors.New("cannot delete criteria that is used in evaluations")

	// moderation
	ErrReportNotFound        = errors.New("report not found")
	ErrReportAlreadyResolved = errors.New("report already resolved")

	// votes
	ErrVoteNotFound = errors.New("vote not found")
	ErrOwnVote      = errors.New("cannot vote on your own evaluation")
)
