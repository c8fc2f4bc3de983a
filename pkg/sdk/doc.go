// Package catalogqa embeds the catalog question-answering engine in a Go
// program without running the HTTP server.
//
// A Client routes each question either to structured filtering over an
// in-memory product catalog or to nearest-neighbor lookup over FAQ
// questions embedded once at construction.
//
//	client, err := catalogqa.New(ctx,
//	    catalogqa.WithCatalogFile("data/products.csv"),
//	    catalogqa.WithFAQFile("data/faq.csv"),
//	    catalogqa.WithOpenAI(os.Getenv("OPENAI_API_KEY"), "text-embedding-3-small", "gpt-4o-mini"),
//	)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	ans, _ := client.Ask(ctx, "Show me top-rated electronics under $500 in stock")
//	fmt.Println(ans.Text)
//
// Custom providers plug in through WithEmbedder and WithClassifier.
package catalogqa
