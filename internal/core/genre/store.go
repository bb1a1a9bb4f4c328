// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import "context"

// Repository is the data access contract for genres.
type Repository interface {
	// List returns every genre ordered by name.
	List(context context.Context) ([]*Genre, error)

	FindByID(context context.Context, id int) (*Genre, error)

	// Create inserts the genre and fills in its serial ID.
	Create(context context.Context, genre *Genre) error

	Update(context context.Context, genre *Genre) error

	// Delete removes the genre; comic associations cascade.
	Delete(context context.Context, id int) error
}
