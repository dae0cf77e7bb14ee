package graph

import (
    "github.com/graphql-go/graphql"

    "github.com/tinoosan/banque/internal/ledger"
    "github.com/tinoosan/banque/internal/service/compte"
    "github.com/tinoosan/banque/internal/service/transaction"
)

// OpKind tells whether an operation is mounted on Query or Mutation.
type OpKind int

const (
    Query OpKind = iota
    Mutation
)

func (k OpKind) String() string {
    if k == Mutation { return "mutation" }
    return "query"
}

// Operation is one entry of the GraphQL registration table.
type Operation struct {
    Name        string
    Kind        OpKind
    Description string
    Args        graphql.FieldConfigArgument
    Output      graphql.Output
    Resolve     graphql.FieldResolveFn
}

// Operations returns the full set of root fields served by the schema.
func (r *Resolver) Operations() []Operation {
    t := r.types
    idArg := graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}}
    return []Operation{
        {
            Name:        "allComptes",
            Kind:        Query,
            Description: "All accounts ordered by id.",
            Output:      graphql.NewList(t.compte),
            Resolve: func(p graphql.ResolveParams) (interface{}, error) {
                return r.comptes.All(p.Context)
            },
        },
        {
            Name:        "compteById",
            Kind:        Query,
            Description: "One account; fails with NOT_FOUND when absent.",
            Args:        idArg,
            Output:      t.compte,
            Resolve: func(p graphql.ResolveParams) (interface{}, error) {
                id, err := parseID(p.Args["id"])
                if err != nil { return nil, err }
                return r.comptes.ByID(p.Context, id)
            },
        },
        {
            Name:        "totalSolde",
            Kind:        Query,
            Description: "Count, sum and average of account balances.",
            Output:      t.soldeStats,
            Resolve: func(p graphql.ResolveParams) (interface{}, error) {
                st, err := r.comptes.TotalSolde(p.Context)
                if err != nil { return nil, err }
                return map[string]interface{}{
                    "count":   st.Count,
                    "sum":     ledger.AmountFloat(st.Sum),
                    "average": st.Average,
                }, nil
            },
        },
        {
            Name:        "compteTransactions",
            Kind:        Query,
            Description: "Transactions of one account ordered by id.",
            Args:        idArg,
            Output:      graphql.NewList(t.transaction),
            Resolve: func(p graphql.ResolveParams) (interface{}, error) {
                id, err := parseID(p.Args["id"])
                if err != nil { return nil, err }
                return r.transactions.ForCompte(p.Context, id)
            },
        },
        {
            Name:        "allTransactions",
            Kind:        Query,
            Description: "All transactions ordered by id.",
            Output:      graphql.NewList(t.transaction),
            Resolve: func(p graphql.ResolveParams) (interface{}, error) {
                return r.transactions.All(p.Context)
            },
        },
        {
            Name:        "transactionStats",
            Kind:        Query,
            Description: "Count of transactions and sums per type.",
            Output:      t.transactionStats,
            Resolve: func(p graphql.ResolveParams) (interface{}, error) {
                st, err := r.transactions.Stats(p.Context)
                if err != nil { return nil, err }
                return map[string]interface{}{
                    "count":       st.Count,
                    "sumDepots":   ledger.AmountFloat(st.SumDepots),
                    "sumRetraits": ledger.AmountFloat(st.SumRetraits),
                }, nil
            },
        },
        {
            Name:        "saveCompte",
            Kind:        Mutation,
            Description: "Creates an account, or replaces it when id is given.",
            Args:        graphql.FieldConfigArgument{"compte": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.compteInput)}},
            Output:      t.compte,
            Resolve: func(p graphql.ResolveParams) (interface{}, error) {
                in, _ := p.Args["compte"].(map[string]interface{})
                req := compte.Request{
                    Solde:        floatArg(in["solde"]),
                    DateCreation: stringArg(in["dateCreation"]),
                    Type:         compteTypeArg(in["type"]),
                }
                if raw, ok := in["id"]; ok && raw != nil {
                    id, err := parseID(raw)
                    if err != nil { return nil, err }
                    req.ID = id
                }
                return r.comptes.Save(p.Context, req)
            },
        },
        {
            Name:        "addTransaction",
            Kind:        Mutation,
            Description: "Records a transaction against an existing account.",
            Args:        graphql.FieldConfigArgument{"transaction": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.transactionInput)}},
            Output:      t.transaction,
            Resolve: func(p graphql.ResolveParams) (interface{}, error) {
                in, _ := p.Args["transaction"].(map[string]interface{})
                compteID, err := parseID(in["compteId"])
                if err != nil { return nil, err }
                return r.transactions.Add(p.Context, transaction.Request{
                    CompteID: compteID,
                    Montant:  floatArg(in["montant"]),
                    Date:     stringArg(in["date"]),
                    Type:     transactionTypeArg(in["type"]),
                })
            },
        },
    }
}

func stringArg(v interface{}) string {
    s, _ := v.(string)
    return s
}

func compteTypeArg(v interface{}) ledger.TypeCompte {
    switch x := v.(type) {
    case ledger.TypeCompte:
        return x
    case string:
        return ledger.TypeCompte(x)
    }
    return ""
}

func transactionTypeArg(v interface{}) ledger.TypeTransaction {
    switch x := v.(type) {
    case ledger.TypeTransaction:
        return x
    case string:
        return ledger.TypeTransaction(x)
    }
    return ""
}
