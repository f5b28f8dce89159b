package service

import (
	"fmt"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/integration"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/money"
)

// readyWithPaymentMessage tells the client their order is ready and links the checkout.
func readyWithPaymentMessage(client *entity.Client, order *entity.Order, checkout *integration.Checkout) string {
	if client != nil && client.PrefersEnglish() {
		return fmt.Sprintf("Hi %s, your order #%d is ready for pickup. Amount due: %s. Pay online: %s",
			client.FirstName, order.OrderNumber, money.FormatCAD(checkout.AmountCents), checkout.URL)
	}
	return fmt.Sprintf("Bonjour %s, votre commande #%d est prête à être récupérée. Montant dû : %s. Payer en ligne : %s",
		firstName(client), order.OrderNumber, money.FormatCAD(checkout.AmountCents), checkout.URL)
}

// pickupOnlyMessage is sent when nothing remains to be collected.
func pickupOnlyMessage(client *entity.Client, order *entity.Order) string {
	if client != nil && client.PrefersEnglish() {
		return fmt.Sprintf("Hi %s, your order #%d is ready for pickup. It is fully paid, see you soon!",
			client.FirstName, order.OrderNumber)
	}
	return fmt.Sprintf("Bonjour %s, votre commande #%d est prête à être récupérée. Elle est entièrement payée, à bientôt!",
		firstName(client), order.OrderNumber)
}

// depositRequestMessage accompanies the deposit link sent at intake.
func depositRequestMessage(client *entity.Client, order *entity.Order, checkout *integration.Checkout) string {
	if client != nil && client.PrefersEnglish() {
		return fmt.Sprintf("Hi %s, thank you for your order #%d. A deposit of %s is required to begin: %s",
			client.FirstName, order.OrderNumber, money.FormatCAD(checkout.AmountCents), checkout.URL)
	}
	return fmt.Sprintf("Bonjour %s, merci pour votre commande #%d. Un dépôt de %s est requis pour commencer : %s",
		firstName(client), order.OrderNumber, money.FormatCAD(checkout.AmountCents), checkout.URL)
}

func firstName(client *entity.Client) string {
	if client == nil {
		return ""
	}
	return client.FirstName
}
