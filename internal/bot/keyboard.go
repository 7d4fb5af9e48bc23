package bot

import tele "gopkg.in/telebot.v4"

// inlineBtn describes a convenience wrapper for inline button properties.
type inlineBtn struct {
	Text   string
	Unique string
}

// inlineRows builds an inline keyboard with one button per row.
func inlineRows(buttons ...inlineBtn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([][]tele.InlineButton, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, []tele.InlineButton{*markup.Data(b.Text, b.Unique).Inline()})
	}
	markup.InlineKeyboard = rows
	return markup
}

// mainMenu is the welcome keyboard: one flow per row.
func mainMenu() *tele.ReplyMarkup {
	return inlineRows(
		inlineBtn{Text: "💰 Melhores Deals (DiscountAPI)", Unique: SelDeals},
		inlineBtn{Text: "🛍️ Buscar na Shopee", Unique: SelSearch},
		inlineBtn{Text: "💳 Adicionar Compra", Unique: SelAddPurchase},
		inlineBtn{Text: "📊 Meus Gastos", Unique: SelMyExpenses},
		inlineBtn{Text: "🧠 Perguntar à IA", Unique: SelAskAI},
		inlineBtn{Text: "❓ Ajuda", Unique: SelHelp},
	)
}
