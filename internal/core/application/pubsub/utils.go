package pubsub

import (
	"time"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
)

func getTradePayload(trade domain.Trade) map[string]interface{} {
	payload := map[string]interface{}{
		"key":            trade.Key.String(),
		"maker":          trade.Maker.String(),
		"taker":          trade.Taker.String(),
		"token_mint":     trade.TokenMint.String(),
		"amount":         trade.Amount,
		"price":          trade.Price,
		"escrow_account": trade.EscrowAccount.String(),
		"escrow_balance": trade.EscrowBalance(),
		"depositor":      trade.Depositor.String(),
		"status":         trade.Status.String(),
		"created_at":     trade.CreatedAt,
		"updated_at":     trade.UpdatedAt,
		"updated_date":   time.Unix(trade.UpdatedAt, 0).UTC().Format(time.RFC3339),
	}
	if !trade.Offer.IsZero() {
		payload["offer"] = trade.Offer.String()
	}
	return payload
}
