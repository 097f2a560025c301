package icequeen

import (
	"context"
	"fmt"
	"icequeen/blockchain/pkg/types"
	"icequeen/blockchain/staking"
	"strings"
	"time"

	"github.com/robfig/cron"
)

const (
	RefreshSpec = "*/15 * * * * *"
	ReportSpec  = "0 0 9 * * *"
	PruneSpec   = "0 30 3 * * *"

	refreshTimeout = 30 * time.Second
)

const positionMsgForm string = "%s\n  staked : %s / %s\n  earned : %s\n  rate : %s/s (pool %s/s)\n  TVL : %s\n"

type EnrolledEvent struct {
	Id          uint
	Title       string
	Description string
	IsActive    bool
	schedule    string
	Event       func(WayOfLaunch)
}

type WayOfLaunch bool

const (
	Manual WayOfLaunch = true
	Auto   WayOfLaunch = false
)

// Run registers every enrolled event on a cron scheduler and starts it
func (t *Tracker) Run() (*cron.Cron, error) {
	t.lg.Info().Msg("Starting Tracker Run")
	c := cron.New()

	for _, enrolled := range t.enrolledEvents {
		if enrolled.schedule == "" {
			continue
		}
		err := c.AddFunc(enrolled.schedule, func() {
			if t.isActive(enrolled) {
				enrolled.Event(Auto)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("event %d 스케줄 등록 실패. %w", enrolled.Id, err)
		}
	}

	c.Start()
	t.lg.Info().Msg("Tracker Run completed")
	return c, nil
}

func (t *Tracker) registerEvents() {
	t.enrolledEvents = []*EnrolledEvent{
		{
			Id:          1,
			Title:       "Staking position 갱신",
			Description: "reward contract 및 pair 상태를 조회하여 position 재계산.\n갱신 결과는 DB 및 cache에 저장",
			schedule:    t.refreshSpec,
			Event:       t.runRefreshEvent,
		},
		{
			Id:          2,
			Title:       "Staking 일일 리포트",
			Description: "pool별 staked/earned/TVL 및 총 earned 전송.\n매일 오전 9시 실행",
			schedule:    t.reportSpec,
			Event:       t.runReportEvent,
		},
		{
			Id:          3,
			Title:       "Position 이력 정리",
			Description: "보관 기간이 지난 position snapshot 삭제.\n매일 오전 3시 30분 실행",
			schedule:    PruneSpec,
			Event:       t.runPruneEvent,
		},
	}

	for _, event := range t.enrolledEvents {
		event.IsActive = true
		if t.stg != nil {
			event.IsActive = t.stg.RetreiveEventIsActive(event.Id)
		}
	}
}

func (t *Tracker) runRefreshEvent(launch WayOfLaunch) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	err := t.Refresh(ctx)
	if err != nil {
		t.lg.Error().Err(err).Msg("[RefreshEvent] Refresh 시, 에러 발생")
		t.send(fmt.Sprintf("[RefreshEvent] Refresh 시, 에러 발생. %s", err))
		return
	}

	if launch == Manual {
		t.send(fmt.Sprintf("[RefreshEvent] 갱신 완료. position %d건", len(t.Positions(nil))))
	}
}

func (t *Tracker) runReportEvent(launch WayOfLaunch) {
	t.lg.Info().Msg("Starting ReportEvent")

	if !t.Ready() {
		t.send("[ReportEvent] 아직 조회된 snapshot 없음")
		return
	}

	t.send(reportMsg(time.Now(), t.Positions(nil), t.TotalEarned()))
	t.lg.Info().Msg("ReportEvent completed")
}

func (t *Tracker) runPruneEvent(launch WayOfLaunch) {
	if t.stg == nil || t.retention <= 0 {
		return
	}

	before := time.Now().Add(-t.retention)
	n, err := t.stg.DeletePositionsBefore(before)
	if err != nil {
		t.lg.Error().Err(err).Msg("[PruneEvent] DeletePositionsBefore 시, 에러 발생")
		t.send(fmt.Sprintf("[PruneEvent] DeletePositionsBefore 시, 에러 발생. %s", err))
		return
	}
	t.lg.Info().Int64("deleted", n).Time("before", before).Msg("PruneEvent completed")
}

func (t *Tracker) send(msg string) {
	if t.ch == nil {
		return
	}
	t.ch <- msg
}

func reportMsg(now time.Time, positions []staking.StakingPosition, totalEarned types.TokenAmount) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[Staking Report] %s\n\n", now.Format("2006-01-02 15:04")))

	for _, p := range positions {
		sb.WriteString(fmt.Sprintf(positionMsgForm,
			pairName(p.Tokens),
			p.StakedAmount.ToExact(),
			p.TotalStakedAmount.ToExact(),
			p.EarnedAmount,
			p.RewardRate,
			p.TotalRewardRate.ToExact(),
			p.TotalStakedInNative,
		))
		if !p.IsActive(now) {
			sb.WriteString("  (reward period 종료)\n")
		}
	}

	sb.WriteString(fmt.Sprintf("\n총 earned : %s", totalEarned))
	return sb.String()
}

func pairName(tokens [2]types.Token) string {
	return tokens[0].Symbol + "/" + tokens[1].Symbol
}
