package jwtx

import "errors"

var (
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrIssuer      = errors.New("jwtx: unexpected issuer")
	ErrSigning     = errors.New("jwtx: signing failed")
	ErrVerify      = errors.New("jwtx: verification failed")
	ErrWeakSecret  = errors.New("jwtx: secret too short")
)
