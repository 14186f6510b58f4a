package app_test

import (
	"context"
	"errors"
)

var errQueryFailed = errors.New("some-error")

type (
	query    struct{}
	response struct{}
)

type querySuccessHandler struct{}

func (h *querySuccessHandler) H(_ context.Context, _ query) (response, error) {
	return response{}, nil
}

type queryFailureHandler struct{}

func (h *queryFailureHandler) H(_ context.Context, _ query) (response, error) {
	return response{}, errQueryFailed
}
