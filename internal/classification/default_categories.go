package classification

import "github.com/Veraticus/feedback-topics/internal/model"

// SpanishCategories returns the canonical Spanish category table.
func SpanishCategories() []model.TopicCategory {
	es := model.LanguageSpanish
	return []model.TopicCategory{
		model.MustTopicCategory(model.CategoryProduct, es,
			[]string{"producto", "calidad", "función", "funcion", "diseño", "diseno", "material", "durabilidad"},
			[]string{"mala calidad", "buen producto"}),
		model.MustTopicCategory(model.CategoryService, es,
			[]string{"servicio", "atención", "atencion", "soporte", "asesoramiento", "trato", "empleado", "vendedor"},
			[]string{"mal servicio", "mala atención"}),
		model.MustTopicCategory(model.CategoryDelivery, es,
			[]string{"entrega", "envío", "envio", "logística", "demora", "reparto", "paquete"},
			[]string{"llegó tarde", "tiempo de entrega"}),
		model.MustTopicCategory(model.CategoryPrice, es,
			[]string{"precio", "costo", "caro", "barato", "económico", "economico", "descuento", "valor"},
			[]string{"relación calidad precio", "muy caro"}),
	}
}

// EnglishCategories returns the canonical English category table.
func EnglishCategories() []model.TopicCategory {
	en := model.LanguageEnglish
	return []model.TopicCategory{
		model.MustTopicCategory(model.CategoryProduct, en,
			[]string{"product", "quality", "feature", "design", "performance", "material", "durability"},
			[]string{"poor quality", "stopped working"}),
		model.MustTopicCategory(model.CategoryService, en,
			[]string{"service", "support", "customer", "help", "assistance", "employee", "staff"},
			[]string{"customer service", "rude staff"}),
		model.MustTopicCategory(model.CategoryDelivery, en,
			[]string{"delivery", "shipping", "logistics", "delay", "carrier", "package"},
			[]string{"arrived late", "never arrived"}),
		model.MustTopicCategory(model.CategoryPrice, en,
			[]string{"price", "cost", "value", "expensive", "cheap", "discount", "offer"},
			[]string{"value for money", "too expensive"}),
	}
}
