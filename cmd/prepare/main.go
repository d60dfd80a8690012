package main

// Consolidates the raw per-ayah sources under data/ into per-surah JSON
// documents under output/. Run this before ingesting or serving.

import (
	"fmt"
	"os"
	"sync"
	"time"

	"tafsir/internal/config"
	"tafsir/internal/tafsir"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		panic(err)
	}

	fmt.Println("Consolidating tafsir data...")
	timeStart := time.Now()

	authors, err := os.ReadDir(cfg.Paths.DataDir)
	if err != nil {
		panic(err)
	}

	store := tafsir.NewStore(cfg.Paths.OutputDir)
	rawStore := tafsir.NewStore(cfg.Paths.DataDir)

	var wg sync.WaitGroup
	for _, dir := range authors {
		if !dir.IsDir() {
			continue
		}

		wg.Add(1)
		go func(author string) {
			defer wg.Done()
			surahs, err := rawStore.Surahs(author)
			if err != nil {
				panic(err)
			}

			for _, surah := range surahs {
				metas, texts, err := tafsir.LoadRawSurah(cfg.Paths.DataDir, author, surah, nil)
				if err != nil {
					panic(err)
				}

				entries := tafsir.ConsolidateSurah(author, surah, metas, texts)
				if len(entries) == 0 {
					fmt.Printf("[skip] %s surah %d has no tafsir text\n", author, surah)
					continue
				}
				if err := store.WriteSurah(author, surah, entries); err != nil {
					panic(err)
				}
				fmt.Printf("[saved] %s surah %d (%d entries)\n", author, surah, len(entries))
			}
		}(dir.Name())
	}
	wg.Wait()

	fmt.Println("Done in: ", time.Since(timeStart))
}
