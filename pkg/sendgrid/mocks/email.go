// Package mocks provides a hand-written testify mock for the email service.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) Send(ctx context.Context, to, subject, plainText, htmlContent string) error {
	args := m.Called(ctx, to, subject, plainText, htmlContent)

	return args.Error(0)
}
