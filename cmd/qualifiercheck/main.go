// Command qualifiercheck reports binding qualifiers written on declarations
// they cannot annotate.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/smtdfc/bootstrap/analysis/qualifiercheck"
)

func main() {
	singlechecker.Main(qualifiercheck.Analyzer)
}
