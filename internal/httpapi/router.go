package httpapi

// routes declares the public HTTP endpoints and attaches per-route middleware.
func (s *Server) routes() {
    // GraphQL
    s.rt.Post("/graphql", s.postGraphQL)
    s.rt.Get("/graphql", s.getGraphQL)
    // Comptes (v1)
    s.rt.With(s.validateSaveCompte()).Post("/v1/comptes", s.saveCompte)
    s.rt.Get("/v1/comptes", s.listComptes)
    s.rt.Get("/v1/comptes/{id}", s.getCompte)
    s.rt.Get("/v1/comptes/{id}/transactions", s.listCompteTransactions)
    // Transactions (v1)
    s.rt.With(s.validateAddTransaction()).Post("/v1/transactions", s.addTransaction)
    s.rt.Get("/v1/transactions", s.listTransactions)
    // Stats (v1)
    s.rt.Get("/v1/stats/solde", s.soldeStats)
    s.rt.Get("/v1/stats/transactions", s.transactionStats)
    // Dictionary
    s.rt.Get("/v1/dictionary/types", s.getTypesDictionary)
    // Health and metrics (unversioned)
    s.rt.Get("/healthz", s.healthz)
    s.rt.Get("/readyz", s.readyz)
    s.rt.Handle("/metrics", metricsHandler())
}
