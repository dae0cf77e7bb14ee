package dictionary

import "testing"

func TestGroups(t *testing.T) {
    all := Groups("")
    if len(all) != 2 || all[0].Kind != KindCompte || all[1].Kind != KindTransaction {
        t.Fatalf("unexpected groups: %+v", all)
    }
    if len(all[0].Types) != 2 || all[0].Types[0].Code != "COURANT" || all[0].Types[1].Code != "EPARGNE" {
        t.Fatalf("compte types: %+v", all[0].Types)
    }
    only := Groups(KindTransaction)
    if len(only) != 1 || len(only[0].Types) != 2 || only[0].Types[0].Label != "Dépôt" {
        t.Fatalf("transaction types: %+v", only)
    }
    if ValidKind("other") || !ValidKind(KindCompte) {
        t.Fatalf("ValidKind mismatch")
    }
    if Label("UNKNOWN") != "UNKNOWN" {
        t.Fatalf("unknown label should echo the code")
    }
}
