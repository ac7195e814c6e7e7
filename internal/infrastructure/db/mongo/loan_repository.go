package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openshelf/library-system/internal/core/domain"
	"github.com/openshelf/library-system/internal/core/ports"
)

const loansCollection = "loans"

// LoanRepository persists loans in MongoDB. Transitions run inside a
// session transaction and are guarded by a status precondition in the
// update filter, so of two concurrent transitions on the same loan
// exactly one matches and the loser surfaces domain.ErrConflict.
type LoanRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewLoanRepository(client *mongo.Client, db *mongo.Database) *LoanRepository {
	return &LoanRepository{client: client, db: db}
}

type mongoLoan struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	BookID     string             `bson:"book_id"`
	LoanDate   time.Time          `bson:"loan_date"`
	DueDate    time.Time          `bson:"due_date"`
	ReturnDate *time.Time         `bson:"return_date,omitempty"`
	Status     string             `bson:"status"`
	LateFee    float64            `bson:"late_fee"`
}

func (r *LoanRepository) loans() *mongo.Collection {
	return r.db.Collection(loansCollection)
}

func (r *LoanRepository) Create(ctx context.Context, l *domain.Loan) (*domain.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoLoan{
		UserID:   l.UserID,
		BookID:   l.BookID,
		LoanDate: l.LoanDate.UTC(),
		DueDate:  l.DueDate.UTC(),
		Status:   string(l.Status),
		LateFee:  l.LateFee,
	}

	res, err := r.loans().InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert loan: %w", err)
	}

	created := *l
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *LoanRepository) FindByID(ctx context.Context, id string) (*domain.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLoanNotFound
	}

	var ml mongoLoan
	if err := r.loans().FindOne(ctx, bson.M{"_id": oid}).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, fmt.Errorf("find loan: %w", err)
	}
	return ml.toDomain(), nil
}

// List returns loans matching filter, newest loan_date first.
func (r *LoanRepository) List(ctx context.Context, filter ports.ListLoansFilter) ([]*domain.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	cur, err := r.loans().Find(ctx, query, options.Find().SetSort(bson.D{{Key: "loan_date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find loans: %w", err)
	}
	defer cur.Close(ctx)

	var loans []*domain.Loan
	for cur.Next(ctx) {
		var ml mongoLoan
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode loan: %w", err)
		}
		loans = append(loans, ml.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate loans: %w", err)
	}
	return loans, nil
}

// Approve atomically transitions the loan pending -> approved and marks
// the book unavailable.
func (r *LoanRepository) Approve(ctx context.Context, loanID, bookID string) error {
	update := bson.M{"$set": bson.M{"status": string(domain.StatusApproved)}}
	return r.transition(ctx, loanID, bookID, domain.StatusPending, update, false)
}

// Return atomically transitions the loan approved -> returned, stamps the
// return date and late fee, and marks the book available again.
func (r *LoanRepository) Return(ctx context.Context, loanID, bookID string, returnedAt time.Time, lateFee float64) error {
	update := bson.M{"$set": bson.M{
		"status":      string(domain.StatusReturned),
		"return_date": returnedAt.UTC(),
		"late_fee":    lateFee,
	}}
	return r.transition(ctx, loanID, bookID, domain.StatusApproved, update, true)
}

// transition applies a conditional loan update and the matching book
// availability flip in one transaction. The status precondition in the
// loan filter is what resolves concurrent transitions: the loser matches
// zero documents and gets ErrConflict.
func (r *LoanRepository) transition(ctx context.Context, loanID, bookID string, from domain.LoanStatus, update bson.M, available bool) error {
	loanOID, err := primitive.ObjectIDFromHex(loanID)
	if err != nil {
		return domain.ErrLoanNotFound
	}
	bookOID, err := primitive.ObjectIDFromHex(bookID)
	if err != nil {
		return domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.loans().UpdateOne(sc,
			bson.M{"_id": loanOID, "status": string(from)},
			update,
		)
		if err != nil {
			return nil, fmt.Errorf("update loan: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrConflict
		}

		bres, err := r.db.Collection(booksCollection).UpdateOne(sc,
			bson.M{"_id": bookOID},
			bson.M{"$set": bson.M{"available": available}},
		)
		if err != nil {
			return nil, fmt.Errorf("update book availability: %w", err)
		}
		if bres.MatchedCount == 0 {
			return nil, domain.ErrBookNotFound
		}
		return nil, nil
	})
	return err
}

// EnsureIndexes creates the indexes backing loan listings.
func (r *LoanRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "book_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "loan_date", Value: -1}}},
	}

	_, err := r.loans().Indexes().CreateMany(ctx, indexes)
	return err
}

func (ml *mongoLoan) toDomain() *domain.Loan {
	return &domain.Loan{
		ID:         ml.ID.Hex(),
		UserID:     ml.UserID,
		BookID:     ml.BookID,
		LoanDate:   ml.LoanDate,
		DueDate:    ml.DueDate,
		ReturnDate: ml.ReturnDate,
		Status:     domain.LoanStatus(ml.Status),
		LateFee:    ml.LateFee,
	}
}
