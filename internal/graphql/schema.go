// Package graphql exposes a small read-only query surface over the tally
// data, for partners that prefer a single flexible endpoint over the REST
// listing routes.
package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/repository"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/service"
)

var leaderboardEntryType = graphql.NewObject(
	graphql.ObjectConfig{
		Name: "LeaderboardEntry",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.String,
			},
			"name": &graphql.Field{
				Type: graphql.String,
			},
			"votes": &graphql.Field{
				Type: graphql.Int,
			},
		},
	},
)

// NewSchema builds the query schema. Both queries resolve straight against
// the repositories; there are no mutations — votes only enter through the
// rate-limited REST endpoint.
func NewSchema(stats *repository.StatsRepo, votes *repository.VoteRepo) (graphql.Schema, error) {
	queryType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"contestantVotes": &graphql.Field{
					Type: graphql.Int,
					Args: graphql.FieldConfigArgument{
						"id": &graphql.ArgumentConfig{
							Type: graphql.NewNonNull(graphql.String),
						},
					},
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						id, _ := p.Args["id"].(string)
						if id == "" {
							return nil, fmt.Errorf("id is required")
						}
						return votes.ContestantTotal(p.Context, id)
					},
				},
				"leaderboard": &graphql.Field{
					Type: graphql.NewList(leaderboardEntryType),
					Args: graphql.FieldConfigArgument{
						"limit": &graphql.ArgumentConfig{
							Type:         graphql.Int,
							DefaultValue: service.LeaderboardSize,
						},
					},
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						limit, _ := p.Args["limit"].(int)
						if limit < 1 || limit > 100 {
							return nil, fmt.Errorf("limit must be between 1 and 100")
						}
						return stats.Leaderboard(p.Context, limit)
					},
				},
			},
		},
	)

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}
