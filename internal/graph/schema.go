// Package graph exposes the account and transaction services as a GraphQL
// schema. Root fields are declared in a registration table (see Operations)
// and mounted on Query or Mutation when the schema is built.
package graph

import (
    "context"
    "errors"
    "fmt"
    "log/slog"

    "github.com/graphql-go/graphql"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"

    "github.com/tinoosan/banque/internal/errs"
    "github.com/tinoosan/banque/internal/service/compte"
    "github.com/tinoosan/banque/internal/service/transaction"
)

var operationsTotal = promauto.NewCounterVec(
    prometheus.CounterOpts{
        Namespace: "banque",
        Name:      "graphql_operations_total",
        Help:      "Total number of GraphQL root field resolutions",
    },
    []string{"operation", "outcome"},
)

// Resolver binds the services to the GraphQL types.
type Resolver struct {
    comptes      compte.Service
    transactions transaction.Service
    log          *slog.Logger
    types        *types
}

// Schema is a built GraphQL schema ready to execute requests.
type Schema struct {
    schema graphql.Schema
    log    *slog.Logger
}

// Request is a single GraphQL request as received over the wire.
type Request struct {
    Query         string                 `json:"query"`
    OperationName string                 `json:"operationName,omitempty"`
    Variables     map[string]interface{} `json:"variables,omitempty"`
}

// New builds the schema from the registration table.
func New(comptes compte.Service, transactions transaction.Service, logger *slog.Logger) (*Schema, error) {
    if logger == nil { logger = slog.Default() }
    r := &Resolver{comptes: comptes, transactions: transactions, log: logger}
    r.types = newTypes(r)

    query := graphql.Fields{}
    mutation := graphql.Fields{}
    for _, op := range r.Operations() {
        f := &graphql.Field{
            Type:        op.Output,
            Args:        op.Args,
            Description: op.Description,
            Resolve:     r.instrument(op),
        }
        target := query
        if op.Kind == Mutation { target = mutation }
        if _, dup := target[op.Name]; dup {
            return nil, fmt.Errorf("graph: duplicate %s %q", op.Kind, op.Name)
        }
        target[op.Name] = f
    }

    cfg := graphql.SchemaConfig{
        Query: graphql.NewObject(graphql.ObjectConfig{Name: "Query", Fields: query}),
    }
    if len(mutation) > 0 {
        cfg.Mutation = graphql.NewObject(graphql.ObjectConfig{Name: "Mutation", Fields: mutation})
    }
    s, err := graphql.NewSchema(cfg)
    if err != nil { return nil, fmt.Errorf("graph: build schema: %w", err) }
    return &Schema{schema: s, log: logger}, nil
}

// Execute runs one request. Field errors are reported in the result, never
// as a Go error.
func (s *Schema) Execute(ctx context.Context, req Request) *graphql.Result {
    return graphql.Do(graphql.Params{
        Schema:         s.schema,
        RequestString:  req.Query,
        VariableValues: req.Variables,
        OperationName:  req.OperationName,
        Context:        ctx,
    })
}

// instrument counts each root resolution and logs infrastructure failures
// with their cause, which never reaches the client.
func (r *Resolver) instrument(op Operation) graphql.FieldResolveFn {
    return func(p graphql.ResolveParams) (interface{}, error) {
        out, err := op.Resolve(p)
        if err != nil {
            kind := errs.KindOf(err)
            operationsTotal.WithLabelValues(op.Name, kind.Code()).Inc()
            if kind == errs.KindInfra {
                r.log.Error("graphql operation failed", "operation", op.Name, "err", err, "cause", errorCause(err))
            }
            return nil, err
        }
        operationsTotal.WithLabelValues(op.Name, "ok").Inc()
        return out, nil
    }
}

func errorCause(err error) string {
    var e *errs.Error
    if errors.As(err, &e) && e.Err != nil { return e.Err.Error() }
    return err.Error()
}
