package dictionary

import "github.com/tinoosan/banque/internal/ledger"

const (
    KindCompte      = "compte"
    KindTransaction = "transaction"
)

type TypeDef struct {
    Code  string `json:"code"`
    Label string `json:"label"`
}

// Group lists the accepted codes for one enumeration.
type Group struct {
    Kind  string    `json:"kind"`
    Types []TypeDef `json:"types"`
}

var labels = map[string]string{
    string(ledger.CompteCourant): "Compte courant",
    string(ledger.CompteEpargne): "Compte épargne",
    string(ledger.Depot):         "Dépôt",
    string(ledger.Retrait):       "Retrait",
}

func ValidKind(kind string) bool {
    return kind == KindCompte || kind == KindTransaction
}

func Label(code string) string {
    if l, ok := labels[code]; ok { return l }
    return code
}

// Groups returns the enumerations for kind, or all of them when kind is empty.
func Groups(kind string) []Group {
    out := make([]Group, 0, 2)
    if kind == "" || kind == KindCompte {
        defs := make([]TypeDef, 0, len(ledger.TypesCompte))
        for _, t := range ledger.TypesCompte {
            defs = append(defs, TypeDef{Code: string(t), Label: Label(string(t))})
        }
        out = append(out, Group{Kind: KindCompte, Types: defs})
    }
    if kind == "" || kind == KindTransaction {
        defs := make([]TypeDef, 0, len(ledger.TypesTransaction))
        for _, t := range ledger.TypesTransaction {
            defs = append(defs, TypeDef{Code: string(t), Label: Label(string(t))})
        }
        out = append(out, Group{Kind: KindTransaction, Types: defs})
    }
    return out
}
