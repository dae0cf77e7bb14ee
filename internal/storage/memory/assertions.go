package memory

import (
	"github.com/tinoosan/banque/internal/service/compte"
	"github.com/tinoosan/banque/internal/service/transaction"
)

// Compile-time interface assertions documenting which interfaces Store satisfies.
var (
	_ compte.Repo               = (*Store)(nil)
	_ compte.Writer             = (*Store)(nil)
	_ transaction.Repo          = (*Store)(nil)
	_ transaction.Writer        = (*Store)(nil)
	_ transaction.CompteReader  = (*Store)(nil)
)
