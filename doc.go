// Package emojisearch finds emojis from free-text queries.
//
// An Engine pairs a badger-backed dataset store with a search.Searcher:
//
//	engine, err := emojisearch.Open("/var/lib/emoji-search")
//	if err != nil {
//		return err
//	}
//	defer engine.Close()
//
//	if _, err := engine.Import(ctx, ds); err != nil {
//		return err
//	}
//	emojis, err := engine.Search(ctx, "waving hand", search.WithLimit(5))
//
// Datasets are read from their JSON distribution with dataset.LoadDir, and
// engines without a store can be created over one with New.
package emojisearch
