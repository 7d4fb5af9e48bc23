package bot

import (
	"fmt"
	"strings"

	"financebot/internal/model"
)

// User-facing texts. All messages are in Portuguese, matching the bot's
// audience, and each error message tells the user what to check or retry.
const (
	msgWelcome = "Olá! Eu sou o FinanceBot. Escolha uma opção abaixo para começar a economizar e rastrear seus gastos:"

	msgHelp = "❓ **Guia de Uso do FinanceBot** ❓\n\n" +
		"**💰 Melhores Deals:** Busca as melhores promoções internacionais (em USD).\n" +
		"**🛍️ Buscar na Shopee:** Permite buscar produtos na Shopee. Você será solicitado a digitar o termo de busca.\n" +
		"**💳 Adicionar Compra:** Registra uma compra. Use o formato:\n" +
		"   `Produto - Valor - Categoria` (Ex: `iPhone 15 - 5000 - Eletrônicos`)\n" +
		"**📊 Meus Gastos:** Mostra o resumo das suas compras registradas.\n" +
		"**🧠 Perguntar à IA:** Use a IA para analisar seus gastos e tirar dúvidas financeiras.\n"

	msgUnknownCommand = "Comando não reconhecido. Use /start para ver o menu principal ou /help para o guia de uso."

	msgSearchPrompt = "🛍️ Por favor, digite o termo que você deseja buscar na Shopee (Ex: 'Xiaomi 14')."

	msgPurchasePrompt = "💳 Para registrar uma compra, use o formato:\n" +
		"`Produto - Valor - Categoria`\n" +
		"Exemplo: `iPhone 15 - 5000 - Eletrônicos`"

	msgAIPrompt = "🧠 Qual sua pergunta? Você pode pedir uma análise dos seus gastos ou uma dica financeira geral.\n" +
		"Ex: 'Em que categoria eu mais gastei?' ou 'Devo comprar um novo celular?'"

	msgAIThinking = "🧠 Analisando sua pergunta com a IA..."

	msgAIDisabled = "❌ A funcionalidade de IA está desativada (chave da OpenAI não configurada)."

	msgAIError = "❌ Ocorreu um erro ao consultar a Inteligência Artificial. Verifique sua chave ou limites de uso."

	msgDealsError = "❌ Ocorreu um erro ao buscar as promoções. Verifique a chave da API."

	msgNoDeals = "Nenhuma promoção incrível encontrada no momento. Tente mais tarde!"

	msgSearchError = "❌ Ocorreu um erro de conexão ao tentar buscar na Shopee."

	msgNoPurchases = "📊 Você ainda não registrou nenhuma compra no banco de dados."

	msgPurchaseFormatError = "❌ Formato incorreto. Use: `Produto - Valor - Categoria`\n" +
		"Exemplo: `iPhone 15 - 5000 - Eletrônicos`"

	msgPurchaseValueError = "❌ Formato de valor inválido. Use apenas números (ex: 5000 ou 5000.50)."

	msgPurchaseSaveError = "❌ Não foi possível salvar a compra. Tente novamente em instantes."

	msgExpensesError = "❌ Não foi possível carregar seus gastos. Tente novamente em instantes."
)

func formatDeals(listings []model.Deal) string {
	var b strings.Builder
	b.WriteString("✨ **Melhores Deals do Dia** ✨\n\n")
	for _, d := range listings {
		fmt.Fprintf(&b,
			"🏷️ **%s**\n💰 Preço: $%s | Desconto: %.1f%%\n🏪 Loja: %s\n[🔗 Ver Oferta](%s)\n\n",
			d.Title, d.Price, d.DiscountPct, d.Provider, d.URL,
		)
	}
	return b.String()
}

func formatSearchResults(result model.SearchResult) string {
	if result.Fallback() {
		return fmt.Sprintf(
			"❌ O scraping da Shopee falhou ou não encontrou resultados para '%s'.\n"+
				"Isso é comum, pois a Shopee usa carregamento dinâmico (JavaScript).\n\n"+
				"**Links Simulados (para demonstrar a funcionalidade):**\n"+
				"🔗 [Produto 1 - %s](%s)\n"+
				"🔗 [Produto 2 - %s](%s)\n",
			result.Term, result.Term, result.SearchURL, result.Term, result.SearchURL,
		)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🛍️ **Resultados da Shopee para '%s'** 🛍️\n\n", result.Term)
	for i, link := range result.Links {
		fmt.Fprintf(&b, "🔗 [Produto %d](%s)\n", i+1, link)
	}
	return b.String()
}

func formatPurchaseSaved(product string, value float64, category string) string {
	return fmt.Sprintf(
		"✅ Compra registrada com sucesso no banco de dados!\nProduto: %s\nValor: R$ %.2f\nCategoria: %s",
		product, value, category,
	)
}

func formatExpenses(purchases []model.Purchase) string {
	var total float64
	for _, p := range purchases {
		total += p.Value
	}

	var b strings.Builder
	b.WriteString("📊 **Resumo dos Seus Gastos (Persistente)** 📊\n\n")
	fmt.Fprintf(&b, "Total Gasto: **R$ %.2f**\n", total)
	fmt.Fprintf(&b, "Número de Compras: **%d**\n\n", len(purchases))
	b.WriteString("**Últimas Compras Registradas:**\n")

	shown := purchases
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for _, p := range shown {
		fmt.Fprintf(&b, " - %s (R$ %.2f) - %s (%s)\n",
			p.Product, p.Value, p.Category, p.Date.Format("02/01"))
	}
	return b.String()
}
