package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mausritter-api/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) fieldErrors(err error) map[string][]string {
	s.Require().Error(err)
	fields, ok := errors.GetMeta(err)[errors.MetaValidationErrors].(map[string][]string)
	s.Require().True(ok)
	return fields
}

func (s *ValidationTestSuite) TestBuilderWithoutErrors() {
	vb := errors.NewValidationBuilder()
	s.False(vb.HasErrors())
	s.NoError(vb.Build())
}

func (s *ValidationTestSuite) TestBuilderMessageKeepsOrder() {
	err := errors.NewValidationBuilder().
		RequiredField("storage").
		InvalidField("slot", "unknown slot id").
		Fieldf("pips", "must be at most %d", 250).
		Field("storage", "must be redis or sqlite").
		Build()

	s.True(errors.IsInvalidArgument(err))
	s.Equal("validation failed: storage: is required, must be redis or sqlite; "+
		"slot: is invalid: unknown slot id; pips: must be at most 250", errors.GetMessage(err))

	fields := s.fieldErrors(err)
	s.Equal([]string{"is invalid: unknown slot id"}, fields["slot"])
	s.Len(fields["storage"], 2)
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "Pip", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("name", tc.value, vb)
			if tc.shouldErr {
				s.Error(vb.Build())
			} else {
				s.NoError(vb.Build())
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateLengths() {
	vb := errors.NewValidationBuilder()
	errors.ValidateMinLength("secret", "short", 16, vb)
	errors.ValidateMaxLength("name", "Bartholomew Thistlewhisker the Third", 24, vb)
	errors.ValidateMaxLength("background", "Cook", 24, vb)

	fields := s.fieldErrors(vb.Build())
	s.Contains(fields["secret"][0], "must be at least 16 characters")
	s.Contains(fields["name"][0], "must be no more than 24 characters")
	s.NotContains(fields, "background")
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("pips", 300, 0, 250, vb)
	errors.ValidateRange("str", 9, 2, 12, vb)

	fields := s.fieldErrors(vb.Build())
	s.Contains(fields["pips"][0], "must be between 0 and 250")
	s.NotContains(fields, "str")
}

func (s *ValidationTestSuite) TestValidateEnum() {
	allowed := []string{"redis", "sqlite"}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("storage", "postgres", allowed, vb)
	errors.ValidateEnum("fallback", "sqlite", allowed, vb)

	fields := s.fieldErrors(vb.Build())
	s.Contains(fields["storage"][0], "must be one of: redis, sqlite")
	s.NotContains(fields, "fallback")
}
