//go:build !go1.22

package qualifiercheck

import "go/types"

// unalias is the identity before Go 1.22, where go/types has no Alias type.
func unalias(t types.Type) types.Type { return t }
