package graph

import (
    "strconv"

    "github.com/graphql-go/graphql"

    "github.com/tinoosan/banque/internal/errs"
    "github.com/tinoosan/banque/internal/ledger"
)

// types holds the GraphQL object graph. Compte and Transaction reference each
// other, so their fields are declared through thunks.
type types struct {
    typeCompte       *graphql.Enum
    typeTransaction  *graphql.Enum
    compte           *graphql.Object
    transaction      *graphql.Object
    soldeStats       *graphql.Object
    transactionStats *graphql.Object
    compteInput      *graphql.InputObject
    transactionInput *graphql.InputObject
}

func newTypes(r *Resolver) *types {
    t := &types{}

    compteValues := graphql.EnumValueConfigMap{}
    for _, v := range ledger.TypesCompte {
        compteValues[string(v)] = &graphql.EnumValueConfig{Value: v}
    }
    t.typeCompte = graphql.NewEnum(graphql.EnumConfig{Name: "TypeCompte", Values: compteValues})

    txValues := graphql.EnumValueConfigMap{}
    for _, v := range ledger.TypesTransaction {
        txValues[string(v)] = &graphql.EnumValueConfig{Value: v}
    }
    t.typeTransaction = graphql.NewEnum(graphql.EnumConfig{Name: "TypeTransaction", Values: txValues})

    t.compte = graphql.NewObject(graphql.ObjectConfig{
        Name: "Compte",
        Fields: graphql.FieldsThunk(func() graphql.Fields {
            return graphql.Fields{
                "id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
                    return formatID(p.Source.(ledger.Compte).ID), nil
                }},
                "solde": &graphql.Field{Type: graphql.Float, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
                    return ledger.AmountFloat(p.Source.(ledger.Compte).Solde), nil
                }},
                "dateCreation": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
                    return ledger.FormatDate(p.Source.(ledger.Compte).DateCreation), nil
                }},
                "type": &graphql.Field{Type: t.typeCompte, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
                    return p.Source.(ledger.Compte).Type, nil
                }},
                // resolved with an explicit store call, only when selected
                "transactions": &graphql.Field{Type: graphql.NewList(t.transaction), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
                    return r.transactions.ForCompte(p.Context, p.Source.(ledger.Compte).ID)
                }},
            }
        }),
    })

    t.transaction = graphql.NewObject(graphql.ObjectConfig{
        Name: "Transaction",
        Fields: graphql.FieldsThunk(func() graphql.Fields {
            return graphql.Fields{
                "id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
                    return formatID(p.Source.(ledger.Transaction).ID), nil
                }},
                "montant": &graphql.Field{Type: graphql.Float, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
                    return ledger.AmountFloat(p.Source.(ledger.Transaction).Montant), nil
                }},
                "date": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
                    return ledger.FormatDate(p.Source.(ledger.Transaction).Date), nil
                }},
                "type": &graphql.Field{Type: t.typeTransaction, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
                    return p.Source.(ledger.Transaction).Type, nil
                }},
                "compte": &graphql.Field{Type: t.compte, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
                    return r.comptes.ByID(p.Context, p.Source.(ledger.Transaction).CompteID)
                }},
            }
        }),
    })

    t.soldeStats = graphql.NewObject(graphql.ObjectConfig{
        Name: "SoldeStats",
        Fields: graphql.Fields{
            "count":   &graphql.Field{Type: graphql.Int},
            "sum":     &graphql.Field{Type: graphql.Float},
            "average": &graphql.Field{Type: graphql.Float},
        },
    })
    t.transactionStats = graphql.NewObject(graphql.ObjectConfig{
        Name: "TransactionStats",
        Fields: graphql.Fields{
            "count":       &graphql.Field{Type: graphql.Int},
            "sumDepots":   &graphql.Field{Type: graphql.Float},
            "sumRetraits": &graphql.Field{Type: graphql.Float},
        },
    })

    t.compteInput = graphql.NewInputObject(graphql.InputObjectConfig{
        Name: "CompteInput",
        Fields: graphql.InputObjectConfigFieldMap{
            // present: replace the stored account; absent: create one
            "id":           &graphql.InputObjectFieldConfig{Type: graphql.ID},
            "solde":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
            "dateCreation": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
            "type":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(t.typeCompte)},
        },
    })
    t.transactionInput = graphql.NewInputObject(graphql.InputObjectConfig{
        Name: "TransactionInput",
        Fields: graphql.InputObjectConfigFieldMap{
            "compteId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
            "montant":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
            "date":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
            "type":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(t.typeTransaction)},
        },
    })
    return t
}

func formatID(id int64) string { return strconv.FormatInt(id, 10) }

// parseID accepts the string or int forms the ID scalar produces.
func parseID(v interface{}) (int64, error) {
    switch x := v.(type) {
    case string:
        id, err := strconv.ParseInt(x, 10, 64)
        if err != nil {
            return 0, errs.InvalidFormat("Invalid id " + strconv.Quote(x))
        }
        return id, nil
    case int:
        return int64(x), nil
    case int64:
        return x, nil
    }
    return 0, errs.InvalidFormat("Invalid id")
}

func floatArg(v interface{}) float64 {
    switch x := v.(type) {
    case float64:
        return x
    case int:
        return float64(x)
    }
    return 0
}
