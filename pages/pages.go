package pages

var Login = `
<!DOCTYPE html>
<html>
<head>
    <title>Eraline</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            background: #121212;
            color: #fff;
            display: flex;
            align-items: center;
            justify-content: center;
            height: 100vh;
            margin: 0;
        }
        .card { text-align: center; }
        a.button {
            display: inline-block;
            margin-top: 16px;
            padding: 12px 32px;
            border-radius: 24px;
            background: #1DB954;
            color: #fff;
            text-decoration: none;
            font-weight: bold;
        }
    </style>
</head>
<body>
    <div class="card">
        <h1>Eraline</h1>
        <p>A seasonal timeline of your listening eras.</p>
        <a class="button" href="/login">Log in with Spotify</a>
    </div>
</body>
</html>`

var Timeline = `
<!DOCTYPE html>
<html>
<head>
    <title>Your Timeline</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            background: #121212;
            color: #fff;
            max-width: 720px;
            margin: 0 auto;
            padding: 24px;
        }
        .phase {
            display: flex;
            gap: 16px;
            background: #1e1e1e;
            border-radius: 12px;
            padding: 16px;
            margin-bottom: 16px;
        }
        .phase img { width: 96px; height: 96px; border-radius: 8px; }
        .phase h2 { margin: 0 0 4px 0; font-size: 1.1em; }
        .phase .period { color: #1DB954; font-size: 0.85em; }
        .phase .meta { color: #aaa; font-size: 0.85em; }
        .skeleton { opacity: 0.4; }
        a { color: #1DB954; }
    </style>
</head>
<body>
    <h1>Hey %s, here are your eras</h1>
    <p><a href="/logout">Log out</a></p>
    <div id="phases"><div class="phase skeleton"><div><h2>Crunching your library&hellip;</h2></div></div></div>
    <script>
    async function load() {
        const container = document.getElementById('phases');
        const res = await fetch('/api/phases');
        if (!res.ok) { container.innerHTML = '<p>Session expired. <a href="/login">Log in again</a>.</p>'; return; }
        const phasesList = await res.json();
        container.innerHTML = '';
        for (const phase of phasesList) {
            const el = document.createElement('div');
            el.className = 'phase';
            el.innerHTML = '<img src="' + phase.cover_url + '">' +
                '<div><div class="period">' + phase.phase_period + '</div>' +
                '<h2>&hellip;</h2><p class="meta">' + phase.track_count + ' tracks &middot; ' +
                (phase.sample_tracks || []).slice(0, 3).join(', ') + '</p><p class="summary"></p></div>';
            container.appendChild(el);
        }
        // Name phases one at a time so the generator is never hammered.
        const cards = container.querySelectorAll('.phase');
        for (let i = 0; i < phasesList.length; i++) {
            try {
                const named = await fetch('/api/phases/name', {
                    method: 'POST',
                    headers: {'Content-Type': 'application/json'},
                    body: JSON.stringify({period: phasesList[i].phase_period})
                });
                if (!named.ok) continue;
                const details = await named.json();
                cards[i].querySelector('h2').textContent = details.phase_name;
                cards[i].querySelector('.summary').textContent = details.phase_summary;
            } catch (e) { /* leave the card unnamed */ }
        }
    }
    load();
    </script>
</body>
</html>`
