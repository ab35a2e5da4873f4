package mongodb

import (
	"context"

	"pet-adoption/internal/domain/pets"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type petDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Username    string             `bson:"username"`
	AnimalName  string             `bson:"animalName"`
	AnimalType  string             `bson:"animalType"`
	AnimalAge   int                `bson:"animalAge"`
	Zipcode     string             `bson:"zipcode"`
	Description string             `bson:"description"`
	Tag         string             `bson:"tag"`
	Image       string             `bson:"image"`
	PriorOwners []string           `bson:"priorOwners"`
}

func (d petDoc) toPet() pets.Pet {
	prior := d.PriorOwners
	if prior == nil {
		// documentos viejos no tienen priorOwners
		prior = []string{}
	}
	return pets.Pet{
		ID:            d.ID.Hex(),
		OwnerUsername: d.Username,
		Name:          d.AnimalName,
		Species:       d.AnimalType,
		Age:           d.AnimalAge,
		Zipcode:       d.Zipcode,
		Description:   d.Description,
		Tag:           d.Tag,
		ImageRef:      d.Image,
		PriorOwners:   prior,
		CreatedAt:     d.ID.Timestamp(),
	}
}

type PetsRepo struct {
	coll *mongo.Collection
}

func NewPetsRepo(db *mongo.Database) *PetsRepo {
	return &PetsRepo{coll: db.Collection(CollPets)}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return err
	}
	prior := p.PriorOwners
	if prior == nil {
		prior = []string{}
	}
	res, err := r.coll.InsertOne(ctx, petDoc{
		ID:          oid,
		Username:    p.OwnerUsername,
		AnimalName:  p.Name,
		AnimalType:  p.Species,
		AnimalAge:   p.Age,
		Zipcode:     p.Zipcode,
		Description: p.Description,
		Tag:         p.Tag,
		Image:       p.ImageRef,
		PriorOwners: prior,
	})
	return insertErr(res, err)
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	oid, err := objectID(id)
	if err != nil {
		return pets.Pet{}, err
	}
	var d petDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return pets.Pet{}, findErr(err)
	}
	return d.toPet(), nil
}

func filterDoc(f pets.Filter) bson.M {
	q := bson.M{}
	if f.Name != "" {
		q["animalName"] = f.Name
	}
	if f.Species != "" {
		q["animalType"] = f.Species
	}
	if f.Age != nil {
		q["animalAge"] = *f.Age
	}
	if f.Zipcode != "" {
		q["zipcode"] = f.Zipcode
	}
	if f.Tag != "" {
		q["tag"] = f.Tag
	}
	return q
}

func (r *PetsRepo) List(ctx context.Context, f pets.Filter) ([]pets.Pet, error) {
	cur, err := r.coll.Find(ctx, filterDoc(f), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]pets.Pet, 0)
	for cur.Next(ctx) {
		var d petDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toPet())
	}
	return out, cur.Err()
}

// TransferOwner: un único UpdateOne condicionado al dueño leído por el servicio.
func (r *PetsRepo) TransferOwner(ctx context.Context, id, currentOwner, newOwner string) (bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return false, nil
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "username": currentOwner},
		bson.M{
			"$set":  bson.M{"username": newOwner},
			"$push": bson.M{"priorOwners": currentOwner},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}
