package service

import "fmt"

var (
	ErrInvalidLimit     = fmt.Errorf("limit must be in (0, 1000]")
	ErrInvalidTimeBound = fmt.Errorf("invalid time bound")
	ErrCannotStoreLog   = fmt.Errorf("cannot store log")
	ErrCannotQueryLogs  = fmt.Errorf("cannot query logs")
)
