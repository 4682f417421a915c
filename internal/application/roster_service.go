package application

import (
	"fmt"
	"strings"

	"assassin/internal/models"
	"assassin/internal/repository"
	"assassin/internal/standings"
)

type EliminationInput struct {
	Team     string
	Player   string
	ByTeam   string
	ByPlayer string
}

type EliminationResult struct {
	Target     standings.Player
	TargetTeam string
	Eliminator *standings.Player
	// Credited is false when the eliminator was no longer active.
	Credited bool
}

type RosterServiceImpl struct {
	games    repository.Game
	members  repository.Member
	sessions *Sessions
	logger   Logger
}

func NewRosterServiceImpl(games repository.Game, members repository.Member, sessions *Sessions, logger Logger) *RosterServiceImpl {
	return &RosterServiceImpl{
		games:    games,
		members:  members,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *RosterServiceImpl) openGame(gameID string) (*models.Game, error) {
	game, err := s.games.GetByID(gameID)
	if err != nil {
		return nil, err
	}
	return game, ensureOpen(game)
}

func (s *RosterServiceImpl) memberOf(gameID, userID string) (*models.Member, error) {
	member, err := s.members.GetMemberByUser(userID)
	if err != nil {
		return nil, err
	}
	if member == nil || member.GameID != gameID {
		return nil, ErrNotInGame
	}
	return member, nil
}

// CreateTeam adds a team. A creator who is a member without a team joins it
// as leader; pass an empty creatorUserID for admin-created teams.
func (s *RosterServiceImpl) CreateTeam(gameID, name, creatorUserID string) (standings.Team, error) {
	if _, err := s.openGame(gameID); err != nil {
		return standings.Team{}, err
	}

	var creator *models.Member
	if creatorUserID != "" {
		m, err := s.memberOf(gameID, creatorUserID)
		if err != nil {
			return standings.Team{}, err
		}
		if m.PlayerID != "" {
			return standings.Team{}, ErrAlreadyOnTeam
		}
		creator = m
	}

	var team standings.Team
	err := s.sessions.Mutate(gameID, func(e *standings.Engine) error {
		teamID, err := e.CreateTeam(name)
		if err != nil {
			return err
		}
		if creator != nil {
			playerID, err := e.Enroll(teamID, creator.DisplayName, "")
			if err != nil {
				return err
			}
			creator.PlayerID = playerID
		}
		idx, err := e.TeamIndex(teamID)
		if err != nil {
			return err
		}
		team, err = e.Team(idx)
		return err
	})
	if err != nil {
		return standings.Team{}, err
	}

	if creator != nil {
		if creator.Role != models.RoleHost {
			creator.Role = models.RoleLeader
		}
		if err := s.members.UpdateMember(creator); err != nil {
			s.logger.Error("team %s created but member %s was not linked: %v", team.Name, creator.UserID, err)
			return team, err
		}
	}

	s.logger.Info("team %s created in game %s", team.Name, gameID)
	return team, nil
}

func (s *RosterServiceImpl) JoinTeam(gameID, teamName, userID string) (standings.Team, error) {
	if _, err := s.openGame(gameID); err != nil {
		return standings.Team{}, err
	}
	member, err := s.memberOf(gameID, userID)
	if err != nil {
		return standings.Team{}, err
	}
	if member.PlayerID != "" {
		return standings.Team{}, ErrAlreadyOnTeam
	}

	var team standings.Team
	err = s.sessions.Mutate(gameID, func(e *standings.Engine) error {
		idx, err := e.TeamByName(teamName)
		if err != nil {
			return err
		}
		t, err := e.Team(idx)
		if err != nil {
			return err
		}
		member.PlayerID, err = e.Enroll(t.ID, member.DisplayName, "")
		if err != nil {
			return err
		}
		team, err = e.Team(idx)
		return err
	})
	if err != nil {
		return standings.Team{}, err
	}

	if err := s.members.UpdateMember(member); err != nil {
		return team, err
	}
	return team, nil
}

// AddPlayer enrolls a player who has no account, for organizers filling in
// rosters by hand.
func (s *RosterServiceImpl) AddPlayer(gameID, teamName, playerName string) (standings.Player, error) {
	if _, err := s.openGame(gameID); err != nil {
		return standings.Player{}, err
	}

	var player standings.Player
	err := s.sessions.Mutate(gameID, func(e *standings.Engine) error {
		id, err := e.AddPlayer(teamName, playerName)
		if err != nil {
			return err
		}
		ref, err := e.Locate(id)
		if err != nil {
			return err
		}
		player, err = e.Player(ref)
		return err
	})
	return player, err
}

func (s *RosterServiceImpl) Eliminate(gameID string, in EliminationInput) (*EliminationResult, error) {
	if _, err := s.openGame(gameID); err != nil {
		return nil, err
	}
	if (in.ByTeam == "") != (in.ByPlayer == "") {
		return nil, fmt.Errorf("%w: eliminator needs both team and player", ErrInvalidInput)
	}

	var result *EliminationResult
	err := s.sessions.Mutate(gameID, func(e *standings.Engine) error {
		target, err := e.FindPlayer(in.Team, in.Player)
		if err != nil {
			return err
		}
		var eliminator *standings.PlayerRef
		if in.ByTeam != "" {
			ref, err := e.FindPlayer(in.ByTeam, in.ByPlayer)
			if err != nil {
				return fmt.Errorf("eliminator: %w", err)
			}
			eliminator = &ref
		}
		result, err = eliminate(e, target, eliminator)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("game %s: %s eliminated", gameID, result.Target.Name)
	return result, nil
}

// ReportKill records that the reporting user eliminated the player with the
// given name. Only active players are considered when the name is shared.
func (s *RosterServiceImpl) ReportKill(gameID, userID, targetName string) (*EliminationResult, error) {
	if _, err := s.openGame(gameID); err != nil {
		return nil, err
	}
	member, err := s.memberOf(gameID, userID)
	if err != nil {
		return nil, err
	}
	if member.PlayerID == "" {
		return nil, ErrNotOnTeam
	}
	if strings.TrimSpace(targetName) == "" {
		return nil, fmt.Errorf("%w: target name is required", ErrInvalidInput)
	}

	var result *EliminationResult
	err = s.sessions.Mutate(gameID, func(e *standings.Engine) error {
		me, err := e.Locate(member.PlayerID)
		if err != nil {
			return err
		}
		if p, _ := e.Player(me); p.Status != standings.PlayerActive {
			return fmt.Errorf("%w: reporter is %s", standings.ErrNotActive, p.Status)
		}

		var candidates []standings.PlayerRef
		for _, ref := range e.PlayersNamed(targetName) {
			if ref != me {
				candidates = append(candidates, ref)
			}
		}
		if len(candidates) == 0 {
			return fmt.Errorf("%w: %q", standings.ErrPlayerNotFound, targetName)
		}
		if len(candidates) > 1 {
			var active []standings.PlayerRef
			for _, ref := range candidates {
				if p, _ := e.Player(ref); p.Status == standings.PlayerActive {
					active = append(active, ref)
				}
			}
			if len(active) != 1 {
				return fmt.Errorf("%w: %q", ErrAmbiguousPlayer, targetName)
			}
			candidates = active
		}

		result, err = eliminate(e, candidates[0], &me)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("game %s: %s reported eliminating %s", gameID, userID, result.Target.Name)
	return result, nil
}

func eliminate(e *standings.Engine, target standings.PlayerRef, eliminator *standings.PlayerRef) (*EliminationResult, error) {
	if err := e.EliminatePlayer(target, eliminator); err != nil {
		return nil, err
	}

	victim, err := e.Player(target)
	if err != nil {
		return nil, err
	}
	team, err := e.Team(target.Team)
	if err != nil {
		return nil, err
	}

	result := &EliminationResult{Target: victim, TargetTeam: team.Name}
	if eliminator != nil {
		killer, err := e.Player(*eliminator)
		if err != nil {
			return nil, err
		}
		result.Eliminator = &killer
		result.Credited = killer.Status == standings.PlayerActive
	}
	return result, nil
}

func (s *RosterServiceImpl) Revive(gameID, teamName, playerName string) (standings.Player, error) {
	return s.updatePlayer(gameID, teamName, playerName, (*standings.Engine).RevivePlayer)
}

func (s *RosterServiceImpl) Spectate(gameID, teamName, playerName string) (standings.Player, error) {
	return s.updatePlayer(gameID, teamName, playerName, (*standings.Engine).Spectate)
}

func (s *RosterServiceImpl) updatePlayer(gameID, teamName, playerName string, op func(*standings.Engine, standings.PlayerRef) error) (standings.Player, error) {
	if _, err := s.openGame(gameID); err != nil {
		return standings.Player{}, err
	}

	var player standings.Player
	err := s.sessions.Mutate(gameID, func(e *standings.Engine) error {
		ref, err := e.FindPlayer(teamName, playerName)
		if err != nil {
			return err
		}
		if err := op(e, ref); err != nil {
			return err
		}
		player, err = e.Player(ref)
		return err
	})
	return player, err
}

func (s *RosterServiceImpl) SetTeamStatus(gameID, teamName string, status standings.TeamStatus) error {
	if _, err := s.openGame(gameID); err != nil {
		return err
	}
	return s.sessions.Mutate(gameID, func(e *standings.Engine) error {
		idx, err := e.TeamByName(teamName)
		if err != nil {
			return err
		}
		return e.SetTeamStatus(idx, status)
	})
}

// DeleteTeam removes the team and unlinks members who played on it.
func (s *RosterServiceImpl) DeleteTeam(gameID, teamName string) error {
	if _, err := s.openGame(gameID); err != nil {
		return err
	}

	var removed []standings.Player
	err := s.sessions.Mutate(gameID, func(e *standings.Engine) error {
		idx, err := e.TeamByName(teamName)
		if err != nil {
			return err
		}
		team, err := e.Team(idx)
		if err != nil {
			return err
		}
		removed = team.Players
		return e.DeleteTeam(idx)
	})
	if err != nil {
		return err
	}

	for _, p := range removed {
		member, err := s.members.GetMemberByPlayer(gameID, p.ID)
		if err != nil {
			s.logger.Error("failed to look up member for player %s: %v", p.ID, err)
			continue
		}
		if member == nil {
			continue
		}
		member.PlayerID = ""
		if member.Role == models.RoleLeader {
			member.Role = models.RolePlayer
		}
		if err := s.members.UpdateMember(member); err != nil {
			s.logger.Error("failed to unlink member %s: %v", member.UserID, err)
		}
	}

	s.logger.Info("team %s deleted from game %s", teamName, gameID)
	return nil
}

func (s *RosterServiceImpl) Teams(gameID string) ([]standings.Team, error) {
	game, err := s.games.GetByID(gameID)
	if err != nil {
		return nil, err
	}
	var teams []standings.Team
	err = s.sessions.ViewGame(game, func(e *standings.Engine) error {
		teams = e.Teams()
		return nil
	})
	return teams, err
}
