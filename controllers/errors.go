package controllers

import (
	"errors"

	"marketplace-api/store"
	"marketplace-api/utils"
)

// mapStoreErr normalizes store failures for the HTTP boundary: a missing
// document becomes a NotFound response, anything else is an upstream
// persistence failure.
func mapStoreErr(err error, notFoundMsg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return utils.NotFound(notFoundMsg)
	}
	return utils.Upstream("storage unavailable")
}
