package io

import (
	"errors"

	"github.com/ezrec/ubf/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrQueueFull = errors.New(f("queue full"))
)
