//go:build windows

package platforms

import _ "github.com/axdriver/axdriver/pkg/platforms/windows"
