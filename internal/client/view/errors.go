package view

import "errors"

var ErrInvalidForm = errors.New("form has invalid fields")
