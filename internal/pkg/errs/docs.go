// Package errs holds the error kinds shared by the fulfillment core.
//
// Every kind follows the same shape:
//   - a sentinel (ErrValueIsRequired, ErrObjectNotFound, ...) for errors.Is checks
//   - a struct carrying the details
//   - constructors with and without a cause
//   - Unwrap returning the sentinel, so callers never match on message text
//
// Domain packages define their own sentinels (insufficient stock, voucher
// ineligible, ...) next to the aggregates that raise them. The HTTP adapter
// maps both sets to status codes in one place.
package errs
