package vector

import (
	"context"
	"fmt"
	"strconv"

	"github.com/golang/protobuf/proto"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"tafsir/internal/tafsir"
)

const (
	DefaultResultsLimit = 5
)

type Db struct {
	Client     qdrant.PointsClient
	Collection string
}

// ScoredEntry - A search hit: the stored entry plus its similarity score.
type ScoredEntry struct {
	tafsir.Entry
	Score float32 `json:"score"`
}

// Connect dials qdrant over grpc and creates the collection if it's missing.
// apiKey may be empty for a local unauthenticated instance.
func Connect(host, apiKey, collection string, vectorSize uint64) (*Db, error) {
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if apiKey != "" {
		opts = append(opts, grpc.WithUnaryInterceptor(apiKeyInterceptor(apiKey)))
	}

	conn, err := grpc.NewClient(host, opts...)
	if err != nil {
		return nil, err
	}
	client := qdrant.NewPointsClient(conn)
	ctx := context.Background()

	collClient := qdrant.NewCollectionsClient(conn)

	_, err = collClient.Get(ctx, &qdrant.GetCollectionInfoRequest{CollectionName: collection})
	if err != nil {
		// only create collection if it's not found
		if status.Code(err) == codes.NotFound {
			fmt.Println("Collection not found, creating it.")
			_, err = collClient.Create(ctx, &qdrant.CreateCollection{
				CollectionName: collection,
				VectorsConfig: &qdrant.VectorsConfig{
					Config: &qdrant.VectorsConfig_Params{
						Params: &qdrant.VectorParams{
							Size:     vectorSize,
							Distance: qdrant.Distance_Cosine,
						},
					},
				},
			})

			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	return &Db{
		Client:     client,
		Collection: collection,
	}, nil
}

// qdrant cloud authenticates with an "api-key" metadata entry on every call
func apiKeyInterceptor(apiKey string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, "api-key", apiKey)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// PointID - Deterministic UUID from the record identity, so re-ingesting the
// same (author, surah, range) replaces the old point instead of duplicating it.
func PointID(entry tafsir.Entry) string {
	identity := entry.Author + "/" + strconv.Itoa(entry.SurahNumber) + "/" +
		strconv.Itoa(entry.AyahRange[0]) + "-" + strconv.Itoa(entry.AyahRange[1])
	return uuid.NewMD5(uuid.NameSpaceURL, []byte(identity)).String()
}

// Add upserts a batch of entries with their vectors.
func (db *Db) Add(entries []tafsir.Entry, vectors [][]float32) error {
	if len(entries) != len(vectors) {
		return fmt.Errorf("entries and vectors length mismatch: %d vs %d", len(entries), len(vectors))
	}

	points := make([]*qdrant.PointStruct, len(entries))
	for i, entry := range entries {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(PointID(entry)),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: map[string]*qdrant.Value{
				"author":             {Kind: &qdrant.Value_StringValue{StringValue: entry.Author}},
				"surah_number":       {Kind: &qdrant.Value_IntegerValue{IntegerValue: int64(entry.SurahNumber)}},
				"ayah_start":         {Kind: &qdrant.Value_IntegerValue{IntegerValue: int64(entry.AyahRange[0])}},
				"ayah_end":           {Kind: &qdrant.Value_IntegerValue{IntegerValue: int64(entry.AyahRange[1])}},
				"tafsir_text":        {Kind: &qdrant.Value_StringValue{StringValue: entry.TafsirText}},
				"surah_name_english": {Kind: &qdrant.Value_StringValue{StringValue: entry.SurahNameEnglish}},
				"surah_name_arabic":  {Kind: &qdrant.Value_StringValue{StringValue: entry.SurahNameArabic}},
			},
		}
	}

	upsert, err := db.Client.Upsert(context.Background(), &qdrant.UpsertPoints{
		CollectionName: db.Collection,
		Points:         points,
	})
	if err != nil {
		return err
	}

	getStatus := upsert.GetResult().GetStatus()
	if getStatus != qdrant.UpdateStatus_Acknowledged && getStatus != qdrant.UpdateStatus_Completed {
		return fmt.Errorf("error adding entries to vector db. status: %d", getStatus)
	}

	return nil
}

// Search runs a nearest-neighbor query. author/surah narrow the search via
// payload filters when non-zero.
func (db *Db) Search(embeddings []float32, limit uint64, author string, surah int) ([]ScoredEntry, error) {
	if limit == 0 {
		limit = DefaultResultsLimit
	}

	searchRequest := qdrant.SearchPoints{
		CollectionName: db.Collection,
		Vector:         embeddings,
		WithPayload:    &qdrant.WithPayloadSelector{SelectorOptions: &qdrant.WithPayloadSelector_Enable{Enable: true}},
		Limit:          limit,
		Filter:         searchFilter(author, surah),
	}
	resp, err := db.Client.Search(context.Background(), &searchRequest)
	if err != nil {
		return nil, err
	}

	results := make([]ScoredEntry, len(resp.GetResult()))
	for i, point := range resp.GetResult() {
		payload := point.Payload
		if payload == nil {
			return nil, fmt.Errorf("payload is nil")
		}

		results[i] = ScoredEntry{
			Entry: tafsir.Entry{
				Author:           payload["author"].GetStringValue(),
				SurahNumber:      int(payload["surah_number"].GetIntegerValue()),
				AyahRange:        [2]int{int(payload["ayah_start"].GetIntegerValue()), int(payload["ayah_end"].GetIntegerValue())},
				TafsirText:       payload["tafsir_text"].GetStringValue(),
				SurahNameEnglish: payload["surah_name_english"].GetStringValue(),
				SurahNameArabic:  payload["surah_name_arabic"].GetStringValue(),
			},
			Score: point.Score,
		}
	}
	return results, nil
}

func searchFilter(author string, surah int) *qdrant.Filter {
	var must []*qdrant.Condition
	if author != "" {
		must = append(must, &qdrant.Condition{
			ConditionOneOf: &qdrant.Condition_Field{
				Field: &qdrant.FieldCondition{
					Key:   "author",
					Match: &qdrant.Match{MatchValue: &qdrant.Match_Keyword{Keyword: author}},
				},
			},
		})
	}
	if surah != 0 {
		must = append(must, &qdrant.Condition{
			ConditionOneOf: &qdrant.Condition_Field{
				Field: &qdrant.FieldCondition{
					Key:   "surah_number",
					Match: &qdrant.Match{MatchValue: &qdrant.Match_Integer{Integer: int64(surah)}},
				},
			},
		})
	}
	if len(must) == 0 {
		return nil
	}
	return &qdrant.Filter{Must: must}
}

// Count returns the exact number of stored points.
func (db *Db) Count() (uint64, error) {
	resp, err := db.Client.Count(context.Background(), &qdrant.CountPoints{
		CollectionName: db.Collection,
		Exact:          proto.Bool(true), // ensures accurate count
	})
	if err != nil {
		return 0, err
	}
	return resp.GetResult().GetCount(), nil
}
