package emulator

import (
	"errors"

	"github.com/ezrec/ubf/translate"
)

var f = translate.From

var (
	// Run errors
	ErrStepLimit = errors.New(f("step limit exceeded"))
	ErrNoInput   = errors.New(f("input exhausted"))
)
