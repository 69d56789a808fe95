package goroutine

import (
	"runtime/debug"

	"github.com/sitecraft/agency-backend/internal/logger"
)

// SafeGo запускает горутину с перехватом panic: упавшая фоновая задача
// не должна ронять процесс.
func SafeGo(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.WithComponent("goroutine").
					Errorf("panic в горутине: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}
