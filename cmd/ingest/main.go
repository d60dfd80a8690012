package main

// Embeds every consolidated tafsir entry under output/ and upserts it into the
// qdrant collection. Point IDs are derived from (author, surah, range), so
// running this again replaces records instead of duplicating them.

import (
	"fmt"
	"os"
	"sync"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"tafsir/internal/config"
	"tafsir/internal/embedding"
	"tafsir/internal/tafsir"
	"tafsir/internal/vector"
)

const (
	MaxBatch         = 50
	MaxVectorWorkers = 10
)

type batch struct {
	entries []tafsir.Entry
	vectors [][]float32
}

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		panic(err)
	}

	db, err := vector.Connect(
		os.Getenv(cfg.Qdrant.HostEnv),
		os.Getenv(cfg.Qdrant.APIKeyEnv),
		cfg.Qdrant.Collection,
		cfg.Qdrant.VectorSize,
	)
	if err != nil {
		panic(err)
	}

	embedder, err := embedding.NewClient(embedding.Config{
		BaseURL:   cfg.Embedding.BaseURL,
		APIKeyEnv: cfg.Embedding.APIKeyEnv,
		Model:     cfg.Embedding.Model,
	})
	if err != nil {
		panic(err)
	}

	store := tafsir.NewStore(cfg.Paths.OutputDir)
	authors, err := store.Authors()
	if err != nil {
		panic(err)
	}

	fmt.Println("Ingesting tafsir into the vector db...")
	timeStart := time.Now()

	var (
		doneWg sync.WaitGroup
		wg     sync.WaitGroup
	)
	batchChan := make(chan batch, MaxVectorWorkers*2)
	maxWorkersChan := make(chan int, MaxVectorWorkers)

	// upsert receiver pool. the channel is buffered but the total batch count
	// isn't known up front, so keep the receiver in its own goroutine and only
	// close the channel once every sender is done.
	doneWg.Add(1)
	go func() {
		defer doneWg.Done()
		var goroutineWg sync.WaitGroup
		for b := range batchChan {
			maxWorkersChan <- 1
			goroutineWg.Add(1)
			go func(b batch) {
				defer func() {
					<-maxWorkersChan
					goroutineWg.Done()
				}()
				if err := db.Add(b.entries, b.vectors); err != nil {
					panic(err)
				}
			}(b)
		}
		goroutineWg.Wait()
	}()

	for _, author := range authors {
		wg.Add(1)
		go func(author string) {
			defer wg.Done()
			surahs, err := store.Surahs(author)
			if err != nil {
				panic(err)
			}

			for _, surah := range surahs {
				entries, err := store.LoadSurah(author, surah)
				if err != nil {
					panic(err)
				}

				current := batch{}
				for _, entry := range entries {
					if entry.TafsirText == "" {
						continue
					}
					vec, err := embedder.Embed(entry.TafsirText)
					if err != nil {
						panic(err)
					}
					current.entries = append(current.entries, entry)
					current.vectors = append(current.vectors, vec)
					if len(current.entries) >= MaxBatch {
						batchChan <- current
						current = batch{}
					}
				}
				if len(current.entries) > 0 {
					batchChan <- current
				}
				fmt.Printf("[embedded] %s surah %d (%d entries)\n", author, surah, len(entries))
			}
		}(author)
	}

	wg.Wait()
	close(batchChan)
	doneWg.Wait() // senders are done AND every queued upsert finished

	count, err := db.Count()
	if err != nil {
		panic(err)
	}
	fmt.Printf("Vector count: %d\n", count)
	fmt.Println("Done in: ", time.Since(timeStart))
}
