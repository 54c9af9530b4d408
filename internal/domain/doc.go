// Package domain holds what the escrow entities share: the error
// categories every layer maps from, the funding rule errors with their
// stable codes, field validation errors and the Action used to settle a
// payout with compensation. The project entity lives in domain/project and
// the contribute, withdraw and refund rules in domain/ledger.
package domain
