package service

import "errors"

var ErrInvalidSignature = errors.New("invalid stripe webhook signature")
