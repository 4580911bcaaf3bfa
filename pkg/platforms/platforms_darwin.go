//go:build darwin && cgo

package platforms

import _ "github.com/axdriver/axdriver/pkg/platforms/darwin"
