package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"moviehub/internal/microservices/http-api/filter"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
	"moviehub/internal/testutil"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRatingRepository_SubmitKeepsMeanInSync(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := repository.NewRatingRepository(db)
	movie := testutil.Movie(t, db, models.Movie{Name: "Blade Runner", ReleaseYear: 1982})

	_, err := repo.Submit(ctx, movie.ID, "10.0.0.1", 8)
	require.NoError(t, err)
	avg, err := repo.Submit(ctx, movie.ID, "10.0.0.2", 10)
	require.NoError(t, err)
	assert.Equal(t, 9.0, avg)

	avg, err = repo.Submit(ctx, movie.ID, "10.0.0.3", 6)
	require.NoError(t, err)
	assert.Equal(t, 8.0, avg)

	// same ip replaces its score instead of adding one
	avg, err = repo.Submit(ctx, movie.ID, "10.0.0.1", 2)
	require.NoError(t, err)
	assert.Equal(t, 6.0, avg)

	count, err := repo.Count(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	var stored models.Movie
	require.NoError(t, db.First(&stored, movie.ID).Error)
	assert.Equal(t, 6.0, stored.Rating)

	rating, err := repo.GetByIP(ctx, movie.ID, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 2, rating.Score)
}

func TestRatingRepository_UnknownMovie(t *testing.T) {
	db := testutil.NewDB(t)
	_, err := repository.NewRatingRepository(db).Submit(context.Background(), 404, "10.0.0.1", 5)
	assert.True(t, repository.IsNotFound(err))
}

func TestRatingRepository_ConcurrentSubmissions(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := repository.NewRatingRepository(db)
	movie := testutil.Movie(t, db, models.Movie{Name: "Heat"})

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			_, err := repo.Submit(ctx, movie.ID, fmt.Sprintf("10.0.0.%d", score), score)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	var stored models.Movie
	require.NoError(t, db.First(&stored, movie.ID).Error)
	assert.InDelta(t, 5.5, stored.Rating, 1e-9)
}

func TestReactionRepository_StateMachine(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := repository.NewReactionRepository(db)
	user := testutil.User(t, db, "alice")
	movie := testutil.Movie(t, db, models.Movie{Name: "Alien"})
	target := movie.ReactionTarget()

	tests := []struct {
		vote  int
		want  models.ReactionState
		tally repository.Tally
	}{
		{models.VoteLike, models.ReactionCreated, repository.Tally{Likes: 1}},
		{models.VoteLike, models.ReactionRemoved, repository.Tally{}},
		{models.VoteDislike, models.ReactionCreated, repository.Tally{Dislikes: 1}},
		{models.VoteLike, models.ReactionChanged, repository.Tally{Likes: 1}},
		{models.VoteDislike, models.ReactionChanged, repository.Tally{Dislikes: 1}},
		{models.VoteDislike, models.ReactionRemoved, repository.Tally{}},
	}
	for i, tt := range tests {
		state, err := repo.Set(ctx, user.ID, target, tt.vote)
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, tt.want, state, "step %d", i)

		tally, err := repo.Tally(ctx, target)
		require.NoError(t, err)
		assert.Equal(t, tt.tally, tally, "step %d", i)

		var rows int64
		require.NoError(t, db.Model(&models.Reaction{}).Where("user_id = ?", user.ID).Count(&rows).Error)
		assert.LessOrEqual(t, rows, int64(1))
	}
}

func TestReactionRepository_TalliesAndVotes(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := repository.NewReactionRepository(db)
	alice := testutil.User(t, db, "alice")
	bob := testutil.User(t, db, "bob")
	carol := testutil.User(t, db, "carol")
	ford := testutil.Person(t, db, "Harrison", "Ford", models.GenderMale)
	young := testutil.Person(t, db, "Sean", "Young", models.GenderFemale)

	for _, step := range []struct {
		user string
		who  *models.Person
		vote int
	}{
		{alice.ID, ford, models.VoteLike},
		{bob.ID, ford, models.VoteLike},
		{carol.ID, ford, models.VoteDislike},
		{alice.ID, young, models.VoteDislike},
	} {
		_, err := repo.Set(ctx, step.user, step.who.ReactionTarget(), step.vote)
		require.NoError(t, err)
	}

	tallies, err := repo.Tallies(ctx, models.KindPerson, []int64{ford.ID, young.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, repository.Tally{Likes: 2, Dislikes: 1}, tallies[ford.ID])
	assert.Equal(t, int64(1), tallies[ford.ID].Score())
	assert.Equal(t, repository.Tally{Dislikes: 1}, tallies[young.ID])
	assert.Equal(t, repository.Tally{}, tallies[999])

	votes, err := repo.Votes(ctx, alice.ID, models.KindPerson, []int64{ford.ID, young.ID})
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{ford.ID: 1, young.ID: -1}, votes)

	// same id under another kind is a different target
	tallies, err = repo.Tallies(ctx, models.KindMovie, []int64{ford.ID})
	require.NoError(t, err)
	assert.Empty(t, tallies)

	votes, err = repo.Votes(ctx, "", models.KindPerson, []int64{ford.ID})
	require.NoError(t, err)
	assert.Empty(t, votes)
}

func TestReactionRepository_ConcurrentTogglesStayUnique(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := repository.NewReactionRepository(db)
	user := testutil.User(t, db, "alice")
	movie := testutil.Movie(t, db, models.Movie{Name: "Alien"})

	var wg sync.WaitGroup
	for i := 0; i < 7; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Set(ctx, user.ID, movie.ReactionTarget(), models.VoteLike)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// an odd number of identical votes leaves exactly one like
	tally, err := repo.Tally(ctx, movie.ReactionTarget())
	require.NoError(t, err)
	assert.Equal(t, repository.Tally{Likes: 1}, tally)
}

func TestBookmarkRepository_ToggleIsInvolution(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := repository.NewBookmarkRepository(db)
	user := testutil.User(t, db, "alice")
	movie := testutil.Movie(t, db, models.Movie{Name: "Alien"})
	target := movie.ReactionTarget()

	present, err := repo.Toggle(ctx, user.ID, target)
	require.NoError(t, err)
	assert.True(t, present)

	exists, err := repo.Exists(ctx, user.ID, target)
	require.NoError(t, err)
	assert.True(t, exists)

	marked, err := repo.Marked(ctx, user.ID, models.KindMovie, []int64{movie.ID, 42})
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{movie.ID: true}, marked)

	present, err = repo.Toggle(ctx, user.ID, target)
	require.NoError(t, err)
	assert.False(t, present)

	exists, err = repo.Exists(ctx, user.ID, target)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMovieRepo_CreateGetListAndLatest(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := repository.NewMovieRepo(db)
	drama := testutil.Genre(t, db, "Drama")
	usa := testutil.Country(t, db, "USA")
	scott := testutil.Person(t, db, "Ridley", "Scott", models.GenderMale)
	ford := testutil.Person(t, db, "Harrison", "Ford", models.GenderMale)
	role := "Deckard"

	m := &models.Movie{
		Name:        "Blade Runner",
		ReleaseYear: 1982,
		Genres:      []models.Genre{{ID: drama.ID}, {ID: drama.ID}},
		Countries:   []models.Country{{ID: usa.ID}},
		Directors:   []models.Person{{ID: scott.ID}},
		Actors:      []models.MovieActor{{PersonID: ford.ID, Role: &role}},
	}
	require.NoError(t, repo.Create(ctx, m))
	require.NotZero(t, m.ID)

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, got.Genres, 1)
	assert.Equal(t, "Drama", got.Genres[0].Name)
	require.Len(t, got.Directors, 1)
	assert.Equal(t, "Scott", got.Directors[0].LastName)
	require.Len(t, got.Actors, 1)
	assert.Equal(t, "Ford", got.Actors[0].Person.LastName)
	assert.Equal(t, "Deckard", *got.Actors[0].Role)

	testutil.Movie(t, db, models.Movie{Name: "Alien", ReleaseYear: 1979})

	list, total, err := repo.List(ctx, filter.Params{Page: 1, Genres: []int64{drama.ID}}, filter.DefaultPageSize)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Blade Runner", list[0].Name)

	latest, err := repo.Latest(ctx, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "Alien", latest[0].Name)

	_, err = repo.GetByID(ctx, 9999)
	assert.True(t, repository.IsNotFound(err))
}

func TestMovieRepo_DeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	user := testutil.User(t, db, "alice")
	drama := testutil.Genre(t, db, "Drama")
	ford := testutil.Person(t, db, "Harrison", "Ford", models.GenderMale)
	movie := testutil.Movie(t, db, models.Movie{Name: "Blade Runner", Genres: []models.Genre{*drama}})
	testutil.Cast(t, db, movie, ford, "Deckard")

	comments := repository.NewCommentRepository(db)
	parent := &models.Comment{MovieID: movie.ID, Name: "a", Email: "a@example.com", Text: "first"}
	require.NoError(t, comments.Create(ctx, parent))
	reply := &models.Comment{MovieID: movie.ID, MajorID: &parent.ID, Name: "b", Email: "b@example.com", Text: "reply"}
	require.NoError(t, comments.Create(ctx, reply))

	reactions := repository.NewReactionRepository(db)
	_, err := reactions.Set(ctx, user.ID, movie.ReactionTarget(), models.VoteLike)
	require.NoError(t, err)
	_, err = reactions.Set(ctx, user.ID, reply.ReactionTarget(), models.VoteDislike)
	require.NoError(t, err)
	_, err = reactions.Set(ctx, user.ID, ford.ReactionTarget(), models.VoteLike)
	require.NoError(t, err)
	_, err = repository.NewBookmarkRepository(db).Toggle(ctx, user.ID, movie.ReactionTarget())
	require.NoError(t, err)
	_, err = repository.NewRatingRepository(db).Submit(ctx, movie.ID, "10.0.0.1", 8)
	require.NoError(t, err)

	require.NoError(t, repository.NewMovieRepo(db).Delete(ctx, movie.ID))

	for _, model := range []any{&models.Movie{}, &models.Comment{}, &models.Rating{}, &models.MovieActor{}, &models.Bookmark{}} {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		assert.Zero(t, n, "%T", model)
	}

	// only the reaction on the person survives
	var left []models.Reaction
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, models.KindPerson, left[0].TargetKind)

	var genres int64
	require.NoError(t, db.Model(&models.Genre{}).Count(&genres).Error)
	assert.Equal(t, int64(1), genres)

	err = repository.NewMovieRepo(db).Delete(ctx, movie.ID)
	assert.True(t, repository.IsNotFound(err))
}

func TestPersonRepo_FilmographyAndDelete(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := repository.NewPersonRepo(db)
	user := testutil.User(t, db, "alice")
	scott := testutil.Person(t, db, "Ridley", "Scott", models.GenderMale)
	weaver := testutil.Person(t, db, "Sigourney", "Weaver", models.GenderFemale)

	alien := testutil.Movie(t, db, models.Movie{Name: "Alien", ReleaseYear: 1979, Directors: []models.Person{*scott}})
	testutil.Cast(t, db, alien, weaver, "Ripley")

	acted, directed, err := repo.Filmography(ctx, weaver.ID)
	require.NoError(t, err)
	require.Len(t, acted, 1)
	assert.Empty(t, directed)

	acted, directed, err = repo.Filmography(ctx, scott.ID)
	require.NoError(t, err)
	assert.Empty(t, acted)
	require.Len(t, directed, 1)
	assert.Equal(t, alien.ID, directed[0].ID)

	_, err = repository.NewBookmarkRepository(db).Toggle(ctx, user.ID, scott.ReactionTarget())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, scott.ID))
	var links, bookmarks int64
	require.NoError(t, db.Table("movie_directors").Count(&links).Error)
	require.NoError(t, db.Model(&models.Bookmark{}).Count(&bookmarks).Error)
	assert.Zero(t, links)
	assert.Zero(t, bookmarks)

	ok, err := repo.Exists(ctx, scott.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPersonRepo_DuplicateFullName(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewPersonRepo(db)
	testutil.Person(t, db, "Harrison", "Ford", models.GenderMale)

	err := repo.Create(context.Background(), &models.Person{FirstName: "Harrison", LastName: "Ford", Gender: models.GenderMale})
	require.Error(t, err)
	assert.True(t, repository.IsDuplicateKey(err))
}

func TestCommentRepository_DeleteReparentsReplies(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := repository.NewCommentRepository(db)
	movie := testutil.Movie(t, db, models.Movie{Name: "Alien"})

	parent := &models.Comment{MovieID: movie.ID, Name: "a", Email: "a@example.com", Text: "parent"}
	require.NoError(t, repo.Create(ctx, parent))
	reply := &models.Comment{MovieID: movie.ID, MajorID: &parent.ID, Name: "b", Email: "b@example.com", Text: "reply"}
	require.NoError(t, repo.Create(ctx, reply))

	require.NoError(t, repo.Delete(ctx, parent.ID))

	got, err := repo.GetByID(ctx, reply.ID)
	require.NoError(t, err)
	assert.Nil(t, got.MajorID)

	remaining, err := repo.ListByMovie(ctx, movie.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, reply.ID, remaining[0].ID)
}

func TestCatalogRepo_DeleteCategoryUncategorizesMovies(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := repository.NewCatalogRepo(db)
	cat := testutil.Category(t, db, "Classics")
	movie := testutil.Movie(t, db, models.Movie{Name: "Casablanca", CategoryID: &cat.ID})

	require.NoError(t, repo.DeleteCategory(ctx, cat.Slug))

	var stored models.Movie
	require.NoError(t, db.First(&stored, movie.ID).Error)
	assert.Nil(t, stored.CategoryID)

	_, err := repo.CategoryBySlug(ctx, cat.Slug)
	assert.True(t, repository.IsNotFound(err))
}

func TestCatalogRepo_MissingIDs(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewCatalogRepo(db)
	drama := testutil.Genre(t, db, "Drama")

	missing, err := repo.MissingIDs(context.Background(), &models.Genre{}, []int64{drama.ID, 77})
	require.NoError(t, err)
	assert.Equal(t, []int64{77}, missing)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, repository.IsDuplicateKey(nil))
	assert.False(t, repository.IsDuplicateKey(errors.New("boom")))
	assert.True(t, repository.IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, repository.IsDuplicateKey(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, repository.IsDuplicateKey(&pgconn.PgError{Code: "23503"}))
}

func TestTargetRepo_Exists(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := repository.NewTargetRepo(db)
	movie := testutil.Movie(t, db, models.Movie{Name: "Alien"})

	ok, err := repo.Exists(ctx, movie.ReactionTarget())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, models.Target{Kind: models.KindComment, ID: movie.ID})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.Exists(ctx, models.Target{Kind: "genre", ID: 1})
	assert.Error(t, err)
}
