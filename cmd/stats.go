package main

import (
    "encoding/json"
    "os"

    "github.com/spf13/cobra"

    "github.com/tinoosan/banque/internal/ledger"
)

type statsOutput struct {
    Storage      string `json:"storage"`
    Currency     string `json:"currency"`
    Comptes      struct {
        Count   int64   `json:"count"`
        Sum     float64 `json:"sum"`
        Average float64 `json:"average"`
    } `json:"comptes"`
    Transactions struct {
        Count       int64   `json:"count"`
        SumDepots   float64 `json:"sumDepots"`
        SumRetraits float64 `json:"sumRetraits"`
    } `json:"transactions"`
}

var statsCmd = &cobra.Command{
    Use:   "stats",
    Short: "Print account and transaction totals as JSON",
    RunE: func(cmd *cobra.Command, args []string) error {
        ctx := cmd.Context()
        st, err := openStore(ctx, cfg)
        if err != nil { return exitOnError(err, "failed to open store") }
        defer st.Close()
        cs, ts := newServices(st)

        soldes, err := cs.TotalSolde(ctx)
        if err != nil { return exitOnError(err, "failed to compute solde totals") }
        txs, err := ts.Stats(ctx)
        if err != nil { return exitOnError(err, "failed to compute transaction totals") }

        out := statsOutput{Storage: cfg.Storage, Currency: cfg.Currency}
        out.Comptes.Count = soldes.Count
        out.Comptes.Sum = ledger.AmountFloat(soldes.Sum)
        out.Comptes.Average = soldes.Average
        out.Transactions.Count = txs.Count
        out.Transactions.SumDepots = ledger.AmountFloat(txs.SumDepots)
        out.Transactions.SumRetraits = ledger.AmountFloat(txs.SumRetraits)

        enc := json.NewEncoder(os.Stdout)
        enc.SetIndent("", "  ")
        return enc.Encode(out)
    },
}
