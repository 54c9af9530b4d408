// Package ports holds the interfaces between the escrow core and its edges.
// Handlers call CrowdfundingService; the service in turn depends on
// ProjectStore, PayoutClient, IdempotencyStore and Clock, each of which has
// an in-process adapter and a networked or persistent one.
package ports
