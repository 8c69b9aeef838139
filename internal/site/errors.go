package site

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	codeExcludeInvalid = "EXCLUDE_PATTERN_INVALID"
	codeThemeNotFound  = "THEME_NOT_FOUND"
	codeThemeRead      = "THEME_READ_FAILED"
	codeScanFailed     = "SCAN_FAILED"
	codeRenderFailed   = "RENDER_FAILED"
	codeWriteFailed    = "OUTPUT_WRITE_FAILED"
	codeWatchFailed    = "WATCH_FAILED"
)

func wrapValidationError(err error, message, code string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).
		WithTextCode(code)
}

func wrapNotFoundError(err error, message, code string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryNotFound, message).
		WithTextCode(code)
}

func wrapCommandError(err error, message, code string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).
		WithTextCode(code)
}
