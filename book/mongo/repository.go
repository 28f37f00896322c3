package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marcelsud/bookstore/book"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "books"

// Repository is the document-store implementation of book.Repository.
// Identity is a generated 12-byte ObjectID, exposed to the rest of the
// system as its 24-hex-character rendering. Updates are partial merges
// ($set of the supplied fields only).
type Repository struct {
	client     *mongo.Client
	collection *mongo.Collection
	timeout    time.Duration
}

// bookDocument is the stored shape of a book. Separate from book.Book so
// bson tags stay out of the domain.
type bookDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Title  string             `bson:"title"`
	Author string             `bson:"author"`
	Pages  int                `bson:"pages"`
	Rating float64            `bson:"rating"`
	Genre  string             `bson:"genre"`
	Review string             `bson:"review,omitempty"`
}

func (d bookDocument) book() book.Book {
	return book.Book{
		ID:     d.ID.Hex(),
		Title:  d.Title,
		Author: d.Author,
		Pages:  d.Pages,
		Rating: d.Rating,
		Genre:  d.Genre,
		Review: d.Review,
	}
}

// NewRepository connects to MongoDB and pings it, so the caller only
// starts serving traffic against an established connection.
func NewRepository(ctx context.Context, uri, database string, timeout time.Duration) (*Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetConnectTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	return &Repository{
		client:     client,
		collection: client.Database(database).Collection(collectionName),
		timeout:    timeout,
	}, nil
}

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

/* parseID runs before any storage call: a malformed identifier never
 * reaches the driver.
 */
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, book.ErrInvalidID
	}
	return oid, nil
}

// Select fetches one book by its hex identifier.
func (r *Repository) Select(ctx context.Context, id string) (book.Book, error) {
	oid, err := parseID(id)
	if err != nil {
		return book.Book{}, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc bookDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return book.Book{}, book.ErrNotFound
	}
	if err != nil {
		return book.Book{}, fmt.Errorf("selecting book: %w", err)
	}

	return doc.book(), nil
}

// SelectPage returns one page of books sorted by author ascending. The
// ordering is fixed; ties within the same author keep insertion order.
func (r *Repository) SelectPage(ctx context.Context, page book.Page) ([]book.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "author", Value: 1}}).
		SetSkip(page.Skip).
		SetLimit(page.Limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	defer cursor.Close(ctx)

	var books []book.Book
	for cursor.Next(ctx) {
		var doc bookDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding book: %w", err)
		}
		books = append(books, doc.book())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}

	return books, nil
}

// Insert stores a new book and returns the generated identifier.
func (r *Repository) Insert(ctx context.Context, b book.Book) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc := bookDocument{
		Title:  b.Title,
		Author: b.Author,
		Pages:  b.Pages,
		Rating: b.Rating,
		Genre:  b.Genre,
		Review: b.Review,
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("inserting book: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// Update merges the supplied fields into the stored document.
func (r *Repository) Update(ctx context.Context, id string, p book.Patch) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Author != nil {
		set["author"] = *p.Author
	}
	if p.Pages != nil {
		set["pages"] = *p.Pages
	}
	if p.Rating != nil {
		set["rating"] = *p.Rating
	}
	if p.Genre != nil {
		set["genre"] = *p.Genre
	}
	if p.Review != nil {
		set["review"] = *p.Review
	}
	if len(set) == 0 {
		return book.InvalidBookError{Reason: "no fields to update"}
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("updating book: %w", err)
	}
	if res.MatchedCount == 0 {
		return book.ErrNotFound
	}
	return nil
}

// Delete removes one book by its hex identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	if res.DeletedCount == 0 {
		return book.ErrNotFound
	}
	return nil
}

// Count returns the number of stored books. Used by the metrics collector.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("counting books: %w", err)
	}
	return n, nil
}

// Close disconnects the client.
func (r *Repository) Close(ctx context.Context) error {
	if r.client != nil {
		return r.client.Disconnect(ctx)
	}
	return nil
}
