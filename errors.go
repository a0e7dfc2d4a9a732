package knet

import "github.com/shindogauge/knet/win32"

// FormatError is re-exported from win32 so callers of ParseWin32 need not
// import the decoder subpackage directly to type-assert on it.
type FormatError = win32.FormatError
